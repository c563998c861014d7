package main

// Map10 returns a 10-intersection map in two components: {8, 9} is not
// connected to the rest.
func Map10() *RoadMap {
	return mapFromTables(
		[][2]float64{
			{0.7798606835438107, 0.6922727646627362},
			{0.7647837074641568, 0.3252670836724646},
			{0.7155217893995438, 0.20026498027300055},
			{0.7076566826610747, 0.3278339270610988},
			{0.8325506249953353, 0.02310946309985762},
			{0.49016747075266875, 0.5464878695400415},
			{0.8820353070895344, 0.6791919587749445},
			{0.46247219371675075, 0.6258061621642713},
			{0.11622158839385677, 0.11236327488812581},
			{0.1285377678230034, 0.3285840695698353},
		},
		[][]int{
			{7, 6, 5},
			{4, 3, 2},
			{4, 3, 1},
			{5, 4, 1, 2},
			{1, 2, 3},
			{7, 0, 3},
			{0},
			{0, 5},
			{9},
			{8},
		},
	)
}

// Map40 returns the 40-intersection road map used for route examples
func Map40() *RoadMap {
	return mapFromTables(
		[][2]float64{
			{0.7801603911549438, 0.49474860768712914},
			{0.5249831588690298, 0.14953665513987202},
			{0.8085335344099086, 0.7696330846542071},
			{0.2599134798656856, 0.14485659826020547},
			{0.7353838928272886, 0.8089961609345658},
			{0.09088671576431506, 0.7222846879290787},
			{0.313999018186756, 0.01876171413125327},
			{0.6824813442515916, 0.8016111783687677},
			{0.20128789391122526, 0.43196344222361227},
			{0.8551947714242674, 0.9011339078096633},
			{0.7581736589784409, 0.24026772497187532},
			{0.25311953895059136, 0.10321622277398101},
			{0.4813859169876731, 0.5006237737207431},
			{0.9112422509614865, 0.1839028760606296},
			{0.04580558670435442, 0.5886703168399895},
			{0.4582523173083307, 0.1735506267461867},
			{0.12939557977525573, 0.690016328140396},
			{0.607698913404794, 0.362322730884702},
			{0.719569201584275, 0.13985272363426526},
			{0.8860336256842246, 0.891868301175821},
			{0.4238357358399233, 0.026771817842421997},
			{0.8252497121120052, 0.9532681441921305},
			{0.47415009287034726, 0.7353428557575755},
			{0.26253385360950576, 0.9768234503830939},
			{0.9363713903322148, 0.13022993020357043},
			{0.6243437191127235, 0.21665962402659544},
			{0.5572917679006295, 0.2083567880838434},
			{0.7482655725962591, 0.12631654071213483},
			{0.6435799740880603, 0.5488515965193208},
			{0.34509802713919313, 0.8800306496459869},
			{0.021423673670808885, 0.4666482714834408},
			{0.640952694324525, 0.3232711412508066},
			{0.17440205342790494, 0.9528527425842739},
			{0.1332965908314021, 0.3996510641743197},
			{0.583993110207876, 0.42704536740474663},
			{0.2525892643650053, 0.7278723935928435},
			{0.5844653376542692, 0.8591766016574969},
			{0.24128211669887694, 0.6153689016917484},
			{0.0842990736591981, 0.6839211009690325},
			{0.7254813541823022, 0.4765817006470838},
		},
		[][]int{
			{36, 34, 31, 28, 17},
			{35, 31, 27, 26, 25, 20, 18, 17, 15, 6},
			{39, 36, 21, 19, 9, 7, 4},
			{35, 20, 15, 11, 6},
			{39, 36, 21, 19, 9, 7, 2},
			{32, 16, 14},
			{35, 20, 15, 11, 1, 3},
			{39, 36, 22, 21, 19, 9, 2, 4},
			{33, 30, 14},
			{36, 21, 19, 2, 4, 7},
			{31, 27, 26, 25, 24, 18, 17, 13},
			{35, 20, 15, 3, 6},
			{37, 34, 31, 28, 22, 17},
			{27, 24, 18, 10},
			{33, 30, 16, 5, 8},
			{35, 31, 26, 25, 20, 17, 1, 3, 6, 11},
			{37, 30, 5, 14},
			{34, 31, 28, 26, 25, 18, 0, 1, 10, 12, 15},
			{31, 27, 26, 25, 24, 1, 10, 13, 17},
			{21, 2, 4, 7, 9},
			{35, 26, 1, 3, 6, 11, 15},
			{2, 4, 7, 9, 19},
			{39, 37, 29, 7, 12},
			{38, 32, 29},
			{27, 10, 13, 18},
			{34, 26, 1, 10, 15, 17, 18},
			{34, 25, 1, 10, 15, 17, 18, 20},
			{1, 10, 13, 18, 24},
			{36, 39, 0, 12, 17},
			{35, 23, 22},
			{33, 8, 14, 16},
			{34, 0, 1, 10, 12, 15, 17, 18},
			{38, 5, 23},
			{8, 14, 30},
			{0, 12, 17, 25, 26, 31},
			{1, 3, 6, 11, 15, 20, 29},
			{0, 2, 4, 7, 9, 28},
			{12, 16, 22},
			{23, 32},
			{2, 4, 7, 22, 28},
		},
	)
}

// mapFromTables builds a road map whose ids are the table indices
func mapFromTables(coords [][2]float64, roads [][]int) *RoadMap {
	m := NewRoadMap(make(map[int]Point, len(coords)), make(map[int][]int, len(roads)))
	for id, c := range coords {
		m.Intersections[id] = Point{X: c[0], Y: c[1]}
	}
	for id, neighbors := range roads {
		m.Adjacency[id] = neighbors
	}
	return m
}
