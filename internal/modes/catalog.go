package modes

// modeNames maps every animation mode number to the name shown by the Lotus
// Lamp X app. Extracted from the app's mode browser; treat as read-only
// reference data.
var modeNames = map[int]string{
	0:   "7-Color Jump",
	1:   "7-Color Fade",
	2:   "7-Color Strobe",
	3:   "Red Fade",
	4:   "Green Fade",
	5:   "Blue Fade",
	6:   "Yellow Fade",
	7:   "Cyan Fade",
	8:   "Purple Fade",
	9:   "White Fade",
	10:  "Red Strobe",
	11:  "Green Strobe",
	12:  "Blue Strobe",
	13:  "Yellow Strobe",
	14:  "Cyan Strobe",
	15:  "Purple Strobe",
	16:  "Red-Green Trans",
	17:  "Red-Blue Trans",
	18:  "Red-Yellow Trans",
	19:  "Red-Cyan Trans",
	20:  "Red-Purple Trans",
	21:  "Red-White Trans",
	22:  "Green-Blue Trans",
	23:  "Green-Yellow Trans",
	24:  "Green-Cyan Trans",
	25:  "Green-Purple Trans",
	26:  "Green-White Trans",
	27:  "Blue-Yellow Trans",
	28:  "Blue-Cyan Trans",
	29:  "Blue-Purple Trans",
	30:  "Blue-White Trans",
	31:  "Yellow-Cyan Trans",
	32:  "Yellow-Purple Trans",
	33:  "Yellow-White Trans",
	34:  "Cyan-Purple Trans",
	35:  "Cyan-White Trans",
	36:  "Purple-White Trans",
	37:  "Red Breathing",
	38:  "Green Breathing",
	39:  "Blue Breathing",
	40:  "Yellow Breathing",
	41:  "Cyan Breathing",
	42:  "Purple Breathing",
	43:  "White Breathing",
	44:  "7-Color Breathing",
	45:  "RGB Trans",
	46:  "Red Tail",
	47:  "Green Tail",
	48:  "Blue Tail",
	49:  "Yellow Tail",
	50:  "Cyan Tail",
	51:  "Purple Tail",
	52:  "White Tail",
	53:  "Red-Green Tail",
	54:  "Red-Blue Tail",
	55:  "Red-Yellow Tail",
	56:  "Red-Cyan Tail",
	57:  "Red-Purple Tail",
	58:  "Red-White Tail",
	59:  "Green-Blue Tail",
	60:  "Green-Yellow Tail",
	61:  "Green-Cyan Tail",
	62:  "Green-Purple Tail",
	63:  "Green-White Tail",
	64:  "Blue-Yellow Tail",
	65:  "Blue-Cyan Tail",
	66:  "Blue-Purple Tail",
	67:  "Blue-White Tail",
	68:  "Yellow-Cyan Tail",
	69:  "Yellow-Purple Tail",
	70:  "Yellow-White Tail",
	71:  "Cyan-Purple Tail",
	72:  "Cyan-White Tail",
	73:  "Purple-White Tail",
	74:  "7-Color Tail",
	75:  "Meteor Tail",
	76:  "Red Water",
	77:  "Green Water",
	78:  "Blue Water",
	79:  "Yellow Water",
	80:  "Cyan Water",
	81:  "Purple Water",
	82:  "White Water",
	83:  "Red-Green Water",
	84:  "Red-Blue Water",
	85:  "Red-Yellow Water",
	86:  "Red-Cyan Water",
	87:  "Red-Purple Water",
	88:  "Red-White Water",
	89:  "Green-Blue Water",
	90:  "Green-Yellow Water",
	91:  "Green-Cyan Water",
	92:  "Green-Purple Water",
	93:  "Green-White Water",
	94:  "Blue-Yellow Water",
	95:  "Blue-Cyan Water",
	96:  "Blue-Purple Water",
	97:  "Blue-White Water",
	98:  "Yellow-Cyan Water",
	99:  "Yellow-Purple Water",
	100: "Yellow-White Water",
	101: "Cyan-Purple Water",
	102: "Cyan-White Water",
	103: "Purple-White Water",
	104: "7-Color Water",
	105: "Ocean Water",
	106: "Red Curtain",
	107: "Green Curtain",
	108: "Blue Curtain",
	109: "Yellow Curtain",
	110: "Cyan Curtain",
	111: "Purple Curtain",
	112: "White Curtain",
	113: "Open Curtain in Red",
	114: "Close Curtain in Red",
	115: "Open Curtain in Green",
	116: "Close Curtain in Green",
	117: "Open Curtain in Blue",
	118: "Close Curtain in Blue",
	119: "Open Curtain in Yellow",
	120: "Close Curtain in Yellow",
	121: "Open Curtain in Cyan",
	122: "Close Curtain in Cyan",
	123: "Open Curtain in Purple",
	124: "Close Curtain in Purple",
	125: "Open Curtain in White",
	126: "Close Curtain in White",
	127: "7-Color Curtain",
	128: "Rainbow Curtain",
	129: "7-Color in Red Running",
	130: "7-Color in Red Run Back",
	131: "7-Color in Green Running",
	132: "7-Color in Green Run Back",
	133: "7-Color in Blue Running",
	134: "7-Color in Blue Run Back",
	135: "7-Color in Yellow Running",
	136: "7-Color in Yellow Run Back",
	137: "7-Color in Cyan Running",
	138: "7-Color in Cyan Run Back",
	139: "7-Color in Purple Running",
	140: "7-Color in Purple Run Back",
	141: "7-Color in White Running",
	142: "7-Color in White Run Back",
	143: "W-R-W Flow",
	144: "W-R-W Flow Back",
	145: "W-G-W Flow",
	146: "W-G-W Flow Back",
	147: "W-B-W Flow",
	148: "W-B-W Flow Back",
	149: "W-Y-W Flow",
	150: "W-Y-W Flow Back",
	151: "W-C-W Flow",
	152: "W-C-W Flow Back",
	153: "W-P-W Flow",
	154: "W-P-W Flow Back",
	155: "R-G-R Flow",
	156: "R-G-R Flow Back",
	157: "G-B-G Flow",
	158: "G-B-G Flow Back",
	159: "B-R-B Flow",
	160: "B-R-B Flow Back",
	161: "R-Y-R Flow",
	162: "R-Y-R Flow Back",
	163: "G-C-G Flow",
	164: "G-C-G Flow Back",
	165: "B-P-B Flow",
	166: "B-P-B Flow Back",
	167: "Red in Green Running",
	168: "Red in Green Run Back",
	169: "Red in Blue Running",
	170: "Red in Blue Run Back",
	171: "Red in Yellow Running",
	172: "Red in Yellow Run Back",
	173: "Red in Cyan Running",
	174: "Red in Cyan Run Back",
	175: "Red in Purple Running",
	176: "Red in Purple Run Back",
	177: "Red in White Running",
	178: "Red in White Run Back",
	179: "Green in Red Running",
	180: "Green in Red Run Back",
	181: "Green in Blue Running",
	182: "Green in Blue Run Back",
	183: "Green in Yellow Running",
	184: "Green in Yellow Run Back",
	185: "Green in Cyan Running",
	186: "Green in Cyan Run Back",
	187: "Green in Purple Running",
	188: "Green in Purple Run Back",
	189: "Green in White Running",
	190: "Green in White Run Back",
	191: "Blue in Red Running",
	192: "Blue in Red Run Back",
	193: "Blue in Green Running",
	194: "Blue in Green Run Back",
	195: "Blue in Yellow Running",
	196: "Blue in Yellow Run Back",
	197: "Blue in Cyan Running",
	198: "Blue in Cyan Run Back",
	199: "Blue in Purple Running",
	200: "Blue in Purple Run Back",
	201: "Blue in White Running",
	202: "Blue in White Run Back",
	203: "Yellow in Red Running",
	204: "Yellow in Red Run Back",
	205: "Yellow in Green Running",
	206: "Yellow in Green Run Back",
	207: "Yellow in Blue Running",
	208: "Yellow in Blue Run Back",
	209: "Cyan in Red Running",
	210: "Cyan in Red Run Back",
	211: "Purple in Green Running",
	212: "Purple in Green Run Back",
}

// categoryTable lists the app's mode categories in display order. Run and
// run-back modes interleave (each running pattern is followed by its
// reversed variant), so those two categories are built from strided ranges.
var categoryTable = []category{
	{"basic", span(0, 15)},
	{"trans", span(16, 45)},
	{"tail", span(46, 75)},
	{"water", span(76, 105)},
	{"curtain", span(106, 128)},
	{"run", join(stride(129, 141, 2), stride(167, 211, 2))},
	{"runback", join(stride(130, 142, 2), stride(168, 212, 2))},
	{"flow", span(143, 166)},
}

type category struct {
	name  string
	modes []int
}

func span(lo, hi int) []int {
	return stride(lo, hi, 1)
}

func stride(lo, hi, step int) []int {
	out := make([]int, 0, (hi-lo)/step+1)
	for n := lo; n <= hi; n += step {
		out = append(out, n)
	}
	return out
}

func join(parts ...[]int) []int {
	var out []int
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
