package bc

type bc7Mode struct {
	partitions    int
	partitionBits int
	pBits         int
	rotationBits  int
	indexModeBits int
	indexPrec1    int
	indexPrec2    int
	prec          [4]int // R, G, B, A
	precWithP     [4]int
}

var bc7Modes = [8]bc7Mode{
	{3, 4, 6, 0, 0, 3, 0, [4]int{4, 4, 4, 0}, [4]int{5, 5, 5, 0}},
	{2, 6, 2, 0, 0, 3, 0, [4]int{6, 6, 6, 0}, [4]int{7, 7, 7, 0}},
	{3, 6, 0, 0, 0, 2, 0, [4]int{5, 5, 5, 0}, [4]int{5, 5, 5, 0}},
	{2, 6, 4, 0, 0, 2, 0, [4]int{7, 7, 7, 0}, [4]int{8, 8, 8, 0}},
	{1, 0, 0, 2, 1, 2, 3, [4]int{5, 5, 5, 6}, [4]int{5, 5, 5, 6}},
	{1, 0, 0, 2, 0, 2, 2, [4]int{7, 7, 7, 8}, [4]int{7, 7, 7, 8}},
	{1, 0, 2, 0, 0, 4, 0, [4]int{7, 7, 7, 7}, [4]int{8, 8, 8, 8}},
	{2, 6, 4, 0, 0, 2, 0, [4]int{5, 5, 5, 5}, [4]int{6, 6, 6, 6}},
}

// bc7Weights maps an index precision in bits to its interpolation weights
// out of 64.
var bc7Weights = [5][]int{
	2: {0, 21, 43, 64},
	3: {0, 9, 18, 27, 37, 46, 55, 64},
	4: {0, 4, 9, 13, 17, 21, 26, 30, 34, 38, 43, 47, 51, 55, 60, 64},
}

// Subset of each pixel, two bits per pixel, for the two- and three-subset
// shapes.
var bc7PartitionTable = [2][64]uint32{
	{
		0x50505050, 0x40404040, 0x54545454, 0x54505040,
		0x50404000, 0x55545450, 0x55545040, 0x54504000,
		0x50400000, 0x55555450, 0x55544000, 0x54400000,
		0x55555440, 0x55550000, 0x55555500, 0x55000000,
		0x55150100, 0x00004054, 0x15010000, 0x00405054,
		0x00004050, 0x15050100, 0x05010000, 0x40505054,
		0x00404050, 0x05010100, 0x14141414, 0x05141450,
		0x01155440, 0x00555500, 0x15014054, 0x05414150,
		0x44444444, 0x55005500, 0x11441144, 0x05055050,
		0x05500550, 0x11114444, 0x41144114, 0x44111144,
		0x15055054, 0x01055040, 0x05041050, 0x05455150,
		0x14414114, 0x50050550, 0x41411414, 0x00141400,
		0x00041504, 0x00105410, 0x10541000, 0x04150400,
		0x50410514, 0x41051450, 0x05415014, 0x14054150,
		0x41050514, 0x41505014, 0x40011554, 0x54150140,
		0x50505500, 0x00555050, 0x15151010, 0x54540404,
	},
	{
		0xAA685050, 0x6A5A5040, 0x5A5A4200, 0x5450A0A8,
		0xA5A50000, 0xA0A05050, 0x5555A0A0, 0x5A5A5050,
		0xAA550000, 0xAA555500, 0xAAAA5500, 0x90909090,
		0x94949494, 0xA4A4A4A4, 0xA9A59450, 0x2A0A4250,
		0xA5945040, 0x0A425054, 0xA5A5A500, 0x55A0A0A0,
		0xA8A85454, 0x6A6A4040, 0xA4A45000, 0x1A1A0500,
		0x0050A4A4, 0xAAA59090, 0x14696914, 0x69691400,
		0xA08585A0, 0xAA821414, 0x50A4A450, 0x6A5A0200,
		0xA9A58000, 0x5090A0A8, 0xA8A09050, 0x24242424,
		0x00AA5500, 0x24924924, 0x24499224, 0x50A50A50,
		0x500AA550, 0xAAAA4444, 0x66660000, 0xA5A0A5A0,
		0x50A050A0, 0x69286928, 0x44AAAA44, 0x66666600,
		0xAA444444, 0x54A854A8, 0x95809580, 0x96969600,
		0xA85454A8, 0x80959580, 0xAA141414, 0x96960000,
		0xAAAA1414, 0xA05050A0, 0xA0A5A5A0, 0x96000000,
		0x40804080, 0xA9A8A9A8, 0xAAAAAA44, 0x2A4A5254,
	},
}

// Anchor pixel of each subset, one nibble per subset.
var bc7AnchorTable = [2][64]uint16{
	{
		0x00F0, 0x00F0, 0x00F0, 0x00F0, 0x00F0, 0x00F0, 0x00F0, 0x00F0,
		0x00F0, 0x00F0, 0x00F0, 0x00F0, 0x00F0, 0x00F0, 0x00F0, 0x00F0,
		0x00F0, 0x0020, 0x0080, 0x0020, 0x0020, 0x0080, 0x0080, 0x00F0,
		0x0020, 0x0080, 0x0020, 0x0020, 0x0080, 0x0080, 0x0020, 0x0020,
		0x00F0, 0x00F0, 0x0060, 0x0080, 0x0020, 0x0080, 0x00F0, 0x00F0,
		0x0020, 0x0080, 0x0020, 0x0020, 0x0020, 0x00F0, 0x00F0, 0x0060,
		0x0060, 0x0020, 0x0060, 0x0080, 0x00F0, 0x00F0, 0x0020, 0x0020,
		0x00F0, 0x00F0, 0x00F0, 0x00F0, 0x00F0, 0x0020, 0x0020, 0x00F0,
	},
	{
		0x0F30, 0x0830, 0x08F0, 0x03F0, 0x0F80, 0x0F30, 0x03F0, 0x08F0,
		0x0F80, 0x0F80, 0x0F60, 0x0F60, 0x0F60, 0x0F50, 0x0F30, 0x0830,
		0x0F30, 0x0830, 0x0F80, 0x03F0, 0x0F30, 0x0830, 0x0F60, 0x08A0,
		0x0350, 0x0F80, 0x0680, 0x0A60, 0x0F80, 0x0F50, 0x0AF0, 0x08F0,
		0x0F80, 0x03F0, 0x0F30, 0x0A50, 0x0A60, 0x08A0, 0x0980, 0x0AF0,
		0x06F0, 0x0F30, 0x08F0, 0x0F50, 0x03F0, 0x06F0, 0x06F0, 0x08F0,
		0x0F30, 0x03F0, 0x0F50, 0x0F50, 0x0F50, 0x0F80, 0x0F50, 0x0FA0,
		0x0F50, 0x0FA0, 0x0F80, 0x0FD0, 0x03F0, 0x0FC0, 0x0F30, 0x0830,
	},
}

func bc7Subset(partitions, shape, pixel int) int {
	if partitions < 2 {
		return 0
	}
	return int(bc7PartitionTable[partitions-2][shape]>>(2*uint(pixel))) & 3
}

func bc7IsAnchor(partitions, shape, pixel int) bool {
	var anchors uint16
	if partitions > 1 {
		anchors = bc7AnchorTable[partitions-2][shape]
	}
	for p := 0; p < partitions; p++ {
		if pixel == int(anchors>>(4*uint(p)))&0xF {
			return true
		}
	}
	return false
}
