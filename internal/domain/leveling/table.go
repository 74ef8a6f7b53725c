package leveling

const MaxLevel = 100

// cumulativeXP[i] is the total xp required to reach level i+1.
var cumulativeXP = [MaxLevel]int64{
	0, 300, 621, 964, 1331, 1724, 2145, 2595, 3077, 3593,
	4145, 4736, 5368, 6044, 6767, 7541, 8369, 9255, 10203, 11217,
	12302, 13463, 14705, 16034, 17456, 18978, 20607, 22350, 24215, 26211,
	28347, 30633, 33079, 35696, 38496, 41492, 44698, 48128, 51798, 55725,
	59927, 64423, 69234, 74382, 79890, 85784, 92091, 98839, 106059, 113784,
	122050, 130895, 140359, 150485, 161320, 172913, 185318, 198591, 212793, 227989,
	244249, 261647, 280263, 300182, 321495, 344300, 368701, 394810, 422747, 452640,
	484626, 518851, 555472, 594656, 636583, 681445, 729447, 780809, 835766, 894570,
	957490, 1024814, 1096851, 1173931, 1256407, 1344656, 1439082, 1540118, 1648227, 1763904,
	1887678, 2020116, 2161825, 2313454, 2475697, 2649297, 2835049, 3033804, 3246472, 3474027,
}

func init() {
	if err := validateTable(cumulativeXP[:]); err != nil {
		panic(err)
	}
}
