package field

import (
	"strconv"

	"github.com/flarespire359/kujata-sub000/internal/cursor"
	"github.com/flarespire359/kujata-sub000/internal/instruction"
	"github.com/retroenv/retrogolib/set"
)

// definition is the encoding of a single field opcode.
type definition struct {
	mnemonic string
	args     []arg
	// dialog names the operand holding a dialog string table index.
	dialog string
	// decode replaces args for opcodes with a nested encoding.
	decode func(d *decoder) error
}

// invalidOpcodes are reserved opcode bytes that never appear in valid scripts.
var invalidOpcodes = newByteSet(0x0C, 0x0D, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E, 0x1F)

func newByteSet(values ...byte) set.Set[byte] {
	s := set.New[byte]()
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func request(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{u8("entity"), priority}}
}

func partyRequest(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{u8("member"), priority}}
}

func ifByte(mnemonic string, jump arg) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, bu8("a", 0), bu8("b", 1), u8("compare"), jump}}
}

func ifWord(mnemonic string, value func(string, int) arg, jump arg) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, value("a", 0), value("b", 1), u8("compare"), jump}}
}

func ifKey(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{u16("keys"), forward8}}
}

func none(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic}
}

func single(mnemonic, name string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{u8(name)}}
}

// byteMath is a bank addressed byte operation like SETBYTE or PLUS.
func byteMath(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, bu8("dest", 0), bu8("value", 1)}}
}

// wordMath is a bank addressed word operation like SETWORD or PLUS2.
func wordMath(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, bu8("dest", 0), bu16("value", 1)}}
}

func unary(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, bu8("dest", 0)}}
}

func partyValue(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, u8("party"), bu16("value", 1)}}
}

func animation(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{u8("animation"), u8("speed")}}
}

func rangeAnimation(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{u8("animation"), u8("first"), u8("last"), u8("speed")}}
}

func move(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, bs16("x", 0), bs16("y", 1)}}
}

func turn(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, bu8("direction", 1), u8("turns"), u8("speed"), u8("type")}}
}

func entityDest(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, u8("entity"), bu8("dest", 1)}}
}

func dest(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, bu8("dest", 1)}}
}

func radius(mnemonic string, value func(string, int) arg) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, value("radius", 1)}}
}

func scroll2D(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, banks, bs16("x", 0), bs16("y", 1), bu16("speed", 3)}}
}

func item(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, bu16("item", 0), bu8("amount", 1)}}
}

func windowColor(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{
		banks, banks, bu8("corner", 0), bu8("r", 1), bu8("g", 2), bu8("b", 3),
	}}
}

func background(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, bu8("area", 0), bu8("layer", 1)}}
}

func backgroundArea(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, bu8("area", 1)}}
}

func palette(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{banks, bu8("source", 0), bu8("dest", 1), u8("size")}}
}

func paletteColor(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{
		banks, banks, banks, bu8("source", 0), bu8("dest", 1),
		bu8("b", 2), bu8("g", 3), bu8("r", 4), u8("size"),
	}}
}

func paletteRange(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{
		banks, banks, bu8("source", 0), bu8("dest", 1), bu8("start", 2), bu8("size", 3), u8("unknown"),
	}}
}

func paletteStore(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{u8("source"), u8("dest"), u8("start"), u8("size")}}
}

func indexed(mnemonic, value string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{
		banks, banks, bu8("base", 0), bu8("offset", 1), bu8(value, 2), u8("unknown"),
	}}
}

func sine(mnemonic string) *definition {
	return &definition{mnemonic: mnemonic, args: []arg{
		banks, banks, bs16("multiplier", 0), bs16("addend", 1), bs16("value", 2), bu8("dest", 3),
	}}
}

// opcodes maps each supported opcode byte to its encoding.
var opcodes = [256]*definition{
	0x00: none(instruction.Ret),
	0x01: request("REQ"),
	0x02: request("REQSW"),
	0x03: request("REQEW"),
	0x04: partyRequest("PREQ"),
	0x05: partyRequest("PRQSW"),
	0x06: partyRequest("PRQEW"),
	0x07: {mnemonic: "RETTO", args: []arg{priority}},
	0x08: single("JOIN", "speed"),
	0x09: {mnemonic: "SPLIT", args: []arg{
		banks, banks, banks,
		bs16("x1", 0), bs16("y1", 1), bu8("direction1", 2),
		bs16("x2", 3), bs16("y2", 4), bu8("direction2", 5),
		u8("speed"),
	}},
	0x0A: {mnemonic: "SPTYE", args: []arg{banks, banks, bu8("member1", 0), bu8("member2", 1), bu8("member3", 2)}},
	0x0B: {mnemonic: "GTPYE", args: []arg{banks, banks, bu8("member1", 0), bu8("member2", 1), bu8("member3", 2)}},
	0x0E: single("DSKCG", "disk"),
	0x0F: {mnemonic: "SPECIAL", decode: decodeSpecial},

	0x10: {mnemonic: "JMPF", args: []arg{forward8}},
	0x11: {mnemonic: "JMPFL", args: []arg{forward16}},
	0x12: {mnemonic: "JMPB", args: []arg{back8}},
	0x13: {mnemonic: "JMPBL", args: []arg{back16}},
	0x14: ifByte("IFUB", forward8),
	0x15: ifByte("IFUBL", forward16),
	0x16: ifWord("IFSW", bs16, forward8),
	0x17: ifWord("IFSWL", bs16, forward16),
	0x18: ifWord("IFUW", bu16, forward8),
	0x19: ifWord("IFUWL", bu16, forward16),

	0x20: {mnemonic: "MINIGAME", args: []arg{
		u16("field"), s16("x"), s16("y"), s16("z"), u8("parameter"), u8("game"),
	}},
	0x21: single("TUTOR", "tutorial"),
	0x22: {mnemonic: "BTMD2", args: []arg{u32("flags")}},
	0x23: {mnemonic: "BTRLD", args: []arg{banks, bu8("dest", 1)}},
	0x24: {mnemonic: "WAIT", args: []arg{u16("frames")}},
	0x25: {mnemonic: "NFADE", args: []arg{
		banks, banks, u8("type"), bu8("r", 1), bu8("g", 2), bu8("b", 3), u8("speed"), u8("unused"),
	}},
	0x26: single("BLINK", "state"),
	0x27: single("BGMOVIE", "state"),
	0x28: {mnemonic: "KAWAI", decode: decodeKawai},
	0x29: none("KAWIW"),
	0x2A: single("PMOVA", "party"),
	0x2B: single("SLIP", "off"),
	0x2C: {mnemonic: "BGPDH", args: []arg{banks, u8("layer"), bs16("z", 1)}},
	0x2D: {mnemonic: "BGSCR", args: []arg{banks, u8("layer"), bs16("x", 0), bs16("y", 1)}},
	0x2E: single("WCLS", "window"),
	0x2F: {mnemonic: "WSIZW", args: []arg{u8("window"), s16("x"), s16("y"), u16("width"), u16("height")}},

	0x30: ifKey("IFKEY"),
	0x31: ifKey("IFKEYON"),
	0x32: ifKey("IFKEYOFF"),
	0x33: single("UC", "disabled"),
	0x34: single("PDIRA", "party"),
	0x35: {mnemonic: "PTURA", args: []arg{u8("party"), u8("speed"), u8("rotation")}},
	0x36: {mnemonic: "WSPCL", args: []arg{u8("window"), u8("type"), u8("x"), u8("y")}},
	0x37: {mnemonic: "WNUMB", args: []arg{banks, u8("window"), bu16("low", 0), bu16("high", 1), u8("digits")}},
	0x38: {mnemonic: "STTIM", args: []arg{banks, banks, bu8("hours", 0), bu8("minutes", 1), bu8("seconds", 2)}},
	0x39: {mnemonic: "GOLDU", args: []arg{banks, bu16("low", 0), bu16("high", 1)}},
	0x3A: {mnemonic: "GOLDD", args: []arg{banks, bu16("low", 0), bu16("high", 1)}},
	0x3B: {mnemonic: "CHGLD", args: []arg{banks, bu8("low", 0), bu8("high", 1)}},
	0x3C: none("HMPMAX1"),
	0x3D: none("HMPMAX2"),
	0x3E: none("MHMMX"),
	0x3F: none("HMPMAX3"),

	0x40: {mnemonic: "MESSAGE", args: []arg{u8("window"), u8("dialog")}, dialog: "dialog"},
	0x41: {mnemonic: "MPARA", args: []arg{banks, u8("window"), u8("variable"), bu8("value", 1)}},
	0x42: {mnemonic: "MPRA2", args: []arg{banks, u8("window"), u8("variable"), bu16("value", 1)}},
	0x43: {mnemonic: "MPNAM", args: []arg{u8("dialog")}, dialog: "dialog"},
	0x45: partyValue("MPU"),
	0x47: partyValue("MPDWN"),
	0x48: {mnemonic: "ASK", args: []arg{
		banks, u8("window"), u8("dialog"), u8("first"), u8("last"), bu8("dest", 1),
	}, dialog: "dialog"},
	0x49: {mnemonic: "MENU", args: []arg{banks, u8("menu"), bu8("parameter", 1)}},
	0x4A: single("MENU2", "lock"),
	0x4B: single("BTLTB", "table"),
	0x4D: partyValue("HPUP"),
	0x4F: partyValue("HPDWN"),

	0x50: {mnemonic: "WINDOW", args: []arg{u8("window"), u16("x"), u16("y"), u16("width"), u16("height")}},
	0x51: {mnemonic: "WMOVE", args: []arg{u8("window"), s16("x"), s16("y")}},
	0x52: {mnemonic: "WMODE", args: []arg{u8("window"), u8("mode"), u8("closable")}},
	0x53: single("WREST", "window"),
	0x54: single("WCLSE", "window"),
	0x55: {mnemonic: "WROW", args: []arg{u8("window"), u8("rows")}},
	0x56: windowColor("GWCOL"),
	0x57: windowColor("SWCOL"),
	0x58: item("STITM"),
	0x59: item("DLITM"),
	0x5A: item("CKITM"),
	0x5B: {mnemonic: "SMTRA", args: []arg{
		banks, banks, bu8("materia", 0), bu8("ap1", 1), bu8("ap2", 2), bu8("ap3", 3),
	}},
	0x5C: {mnemonic: "DMTRA", args: []arg{
		banks, banks, bu8("materia", 0), bu8("ap1", 1), bu8("ap2", 2), bu8("ap3", 3), u8("amount"),
	}},
	0x5D: {mnemonic: "CMTRA", args: []arg{
		banks, banks, banks, bu8("materia", 0), bu8("ap1", 1), bu8("ap2", 2), bu8("ap3", 3),
		u8("unknown"), bu8("amount", 5),
	}},
	0x5E: {mnemonic: "SHAKE", args: []arg{
		u8("unknown1"), u8("unknown2"), u8("type"),
		u8("xAmplitude"), u8("xFrames"), u8("yAmplitude"), u8("yFrames"),
	}},
	0x5F: none("NOP"),

	0x60: {mnemonic: "MAPJUMP", args: []arg{u16("field"), s16("x"), s16("y"), u16("triangle"), u8("direction")}},
	0x61: single("SCRLO", "unknown"),
	0x62: {mnemonic: "SCRLC", args: []arg{banks, bu16("speed", 1), u8("type")}},
	0x63: {mnemonic: "SCRLA", args: []arg{banks, bu16("speed", 1), u8("entity"), u8("type")}},
	0x64: move("SCR2D"),
	0x65: none("SCRCC"),
	0x66: scroll2D("SCR2DC"),
	0x67: none("SCRLW"),
	0x68: scroll2D("SCR2DL"),
	0x69: single("MPDSP", "unknown"),
	0x6A: {mnemonic: "VWOFT", args: []arg{banks, bs16("y1", 0), bs16("y2", 1), u8("type")}},
	0x6B: {mnemonic: "FADE", args: []arg{
		banks, banks, bu8("r", 1), bu8("g", 2), bu8("b", 3), u8("speed"), u8("type"), u8("adjust"),
	}},
	0x6C: none("FADEW"),
	0x6D: {mnemonic: "IDLCK", args: []arg{u16("triangle"), u8("lock")}},
	0x6E: dest("LSTMP"),
	0x6F: {mnemonic: "SCRLP", args: []arg{banks, bu16("speed", 1), u8("party"), u8("type")}},

	0x70: {mnemonic: "BATTLE", args: []arg{banks, bu16("battle", 1)}},
	0x71: single("BTLON", "disabled"),
	0x72: {mnemonic: "BTLMD", args: []arg{u16("flags")}},
	0x73: entityDest("PGTDR"),
	0x74: entityDest("GETPC"),
	0x75: {mnemonic: "PXYZI", args: []arg{
		banks, banks, u8("party"), bu8("x", 0), bu8("y", 1), bu8("z", 2), bu8("triangle", 3),
	}},
	0x76: byteMath("PLUS!"),
	0x77: wordMath("PLUS2!"),
	0x78: byteMath("MINUS!"),
	0x79: wordMath("MINUS2!"),
	0x7A: unary("INC!"),
	0x7B: unary("INC2!"),
	0x7C: unary("DEC!"),
	0x7D: unary("DEC2!"),
	0x7E: single("TLKON", "disabled"),
	0x7F: {mnemonic: "RDMSD", args: []arg{banks, bu8("seed", 1)}},

	0x80: byteMath("SETBYTE"),
	0x81: wordMath("SETWORD"),
	0x82: byteMath("BITON"),
	0x83: byteMath("BITOFF"),
	0x84: byteMath("BITXOR"),
	0x85: byteMath("PLUS"),
	0x86: wordMath("PLUS2"),
	0x87: byteMath("MINUS"),
	0x88: wordMath("MINUS2"),
	0x89: byteMath("MUL"),
	0x8A: wordMath("MUL2"),
	0x8B: byteMath("DIV"),
	0x8C: wordMath("DIV2"),
	0x8D: byteMath("MOD"),
	0x8E: wordMath("MOD2"),
	0x8F: byteMath("AND"),
	0x90: wordMath("AND2"),
	0x91: byteMath("OR"),
	0x92: wordMath("OR2"),
	0x93: byteMath("XOR"),
	0x94: wordMath("XOR2"),
	0x95: unary("INC"),
	0x96: unary("INC2"),
	0x97: unary("DEC"),
	0x98: unary("DEC2"),
	0x99: unary("RANDOM"),
	0x9A: byteMath("LBYTE"),
	0x9B: wordMath("HBYTE"),
	0x9C: {mnemonic: "2BYTE", args: []arg{banks, banks, bu8("dest", 0), bu8("low", 1), bu8("high", 2)}},
	0x9D: indexed("SETX", "value"),
	0x9E: indexed("GETX", "dest"),
	0x9F: {mnemonic: "SEARCHX", args: []arg{
		banks, banks, banks, bu8("array", 0), bu16("start", 1), bu16("end", 2), bu8("value", 3), bu8("dest", 4),
	}},

	0xA0: single("PC", "character"),
	0xA1: single("CHAR", "model"),
	0xA2: animation("DFANM"),
	0xA3: animation("ANIME1"),
	0xA4: single("VISI", "visible"),
	0xA5: {mnemonic: "XYZI", args: []arg{
		banks, banks, bs16("x", 0), bs16("y", 1), bs16("z", 2), bu16("triangle", 3),
	}},
	0xA6: {mnemonic: "XYI", args: []arg{banks, banks, bs16("x", 0), bs16("y", 1), bu16("triangle", 2)}},
	0xA7: {mnemonic: "XYZ", args: []arg{banks, banks, bs16("x", 0), bs16("y", 1), bs16("z", 2)}},
	0xA8: move("MOVE"),
	0xA9: move("CMOVE"),
	0xAA: single("MOVA", "entity"),
	0xAB: {mnemonic: "TURA", args: []arg{u8("entity"), u8("direction"), u8("speed")}},
	0xAC: none("ANIMW"),
	0xAD: move("FMOVE"),
	0xAE: animation("ANIME2"),
	0xAF: animation("ANIM!1"),

	0xB0: rangeAnimation("CANIM1"),
	0xB1: rangeAnimation("CANM!1"),
	0xB2: {mnemonic: "MSPED", args: []arg{banks, bu16("speed", 1)}},
	0xB3: {mnemonic: "DIR", args: []arg{banks, bu8("direction", 1)}},
	0xB4: turn("TURNGEN"),
	0xB5: turn("TURN"),
	0xB6: single("DIRA", "entity"),
	0xB7: entityDest("GETDIR"),
	0xB8: {mnemonic: "GETAXY", args: []arg{banks, u8("entity"), bu8("x", 0), bu8("y", 1)}},
	0xB9: entityDest("GETAI"),
	0xBA: animation("ANIM!2"),
	0xBB: rangeAnimation("CANIM2"),
	0xBC: rangeAnimation("CANM!2"),
	0xBD: {mnemonic: "ASPED", args: []arg{banks, bu16("speed", 1)}},
	0xBF: single("CC", "entity"),

	0xC0: {mnemonic: "JUMP", args: []arg{
		banks, banks, bs16("x", 0), bs16("y", 1), bu16("triangle", 2), bs16("height", 3),
	}},
	0xC1: {mnemonic: "AXYZI", args: []arg{
		banks, banks, u8("entity"), bu8("x", 0), bu8("y", 1), bu8("z", 2), bu8("triangle", 3),
	}},
	0xC2: {mnemonic: "LADER", args: []arg{
		banks, banks, bs16("x", 0), bs16("y", 1), bs16("z", 2), bu16("triangle", 3),
		u8("key"), u8("animation"), u8("direction"), u8("speed"),
	}},
	0xC3: {mnemonic: "OFST", args: []arg{
		banks, banks, u8("type"), bs16("x", 0), bs16("y", 1), bs16("z", 2), bu16("speed", 3),
	}},
	0xC4: none("OFSTW"),
	0xC5: radius("TALKR", bu8),
	0xC6: radius("SLIDR", bu8),
	0xC7: single("SOLID", "disabled"),
	0xC8: single("PRTYP", "character"),
	0xC9: single("PRTYM", "character"),
	0xCA: {mnemonic: "PRTYE", args: []arg{u8("character1"), u8("character2"), u8("character3")}},
	0xCB: {mnemonic: "IFPRTYQ", args: []arg{u8("character"), forward8}},
	0xCC: {mnemonic: "IFMEMBQ", args: []arg{u8("character"), forward8}},
	0xCD: {mnemonic: "MMBUD", args: []arg{u8("status"), u8("character")}},
	0xCE: single("MMBLK", "character"),
	0xCF: single("MMBUK", "character"),

	0xD0: {mnemonic: "LINE", args: []arg{s16("x1"), s16("y1"), s16("z1"), s16("x2"), s16("y2"), s16("z2")}},
	0xD1: single("LINON", "enabled"),
	0xD2: single("MPJPO", "disabled"),
	0xD3: {mnemonic: "SLINE", args: []arg{
		banks, banks, banks,
		bs16("x1", 0), bs16("y1", 1), bs16("z1", 2), bs16("x2", 3), bs16("y2", 4), bs16("z2", 5),
	}},
	0xD4: sine("SIN"),
	0xD5: sine("COS"),
	0xD6: radius("TLKR2", bu16),
	0xD7: radius("SLDR2", bu16),
	0xD8: {mnemonic: "PMJMP", args: []arg{u16("field")}},
	0xD9: none("PMJMP2"),
	0xDA: {mnemonic: "AKAO2", args: []arg{
		banks, banks, banks, u8("operation"),
		bu16("param1", 0), bu16("param2", 1), bu16("param3", 2), bu16("param4", 3), bu16("param5", 4),
	}},
	0xDB: single("FCFIX", "disabled"),
	0xDC: {mnemonic: "CCANM", args: []arg{u8("animation"), u8("speed"), u8("mode")}},
	0xDD: none("ANIMB"),
	0xDE: none("TURNW"),
	0xDF: {mnemonic: "MPPAL", args: []arg{
		banks, banks, banks, bu8("source", 0), bu8("dest", 1), bu8("start", 2),
		bu8("b", 3), bu8("g", 4), bu8("r", 5), u8("size"),
	}},

	0xE0: background("BGON"),
	0xE1: background("BGOFF"),
	0xE2: backgroundArea("BGROL"),
	0xE3: backgroundArea("BGROL2"),
	0xE4: backgroundArea("BGCLR"),
	0xE5: palette("STPAL"),
	0xE6: palette("LDPAL"),
	0xE7: palette("CPPAL"),
	0xE8: {mnemonic: "RTPAL", args: []arg{
		banks, banks, bu8("source", 0), bu8("dest", 1), bu8("start", 2), bu8("end", 3),
	}},
	0xE9: paletteColor("ADPAL"),
	0xEA: paletteColor("MPPAL2"),
	0xEB: paletteStore("STPLS"),
	0xEC: paletteStore("LDPLS"),
	0xED: paletteRange("CPPAL2"),
	0xEE: paletteRange("RTPAL2"),
	0xEF: {mnemonic: "ADPAL2", args: []arg{
		banks, banks, banks, bu8("source", 0), bu8("dest", 1), bu8("start", 2),
		bu8("b", 3), bu8("g", 4), bu8("r", 5), u8("size"),
	}},

	0xF0: single("MUSIC", "song"),
	0xF1: {mnemonic: "SOUND", args: []arg{banks, bu16("sound", 0), bu8("direction", 1)}},
	0xF2: {mnemonic: "AKAO", args: []arg{
		banks, banks, banks, u8("operation"),
		bu8("param1", 0), bu16("param2", 1), bu16("param3", 2), bu16("param4", 3), bu16("param5", 4),
	}},
	0xF3: single("MUSVT", "song"),
	0xF4: single("MUSVM", "song"),
	0xF5: single("MULCK", "locked"),
	0xF6: single("BMUSC", "song"),
	0xF7: {mnemonic: "CHMPH", args: []arg{banks, bu8("dest", 0), bu8("entity", 1)}},
	0xF8: single("PMVIE", "movie"),
	0xF9: none("MOVIE"),
	0xFA: dest("MVIEF"),
	0xFB: single("MVCAM", "disabled"),
	0xFC: single("FMUSC", "unknown"),
	0xFD: {mnemonic: "CMUSC", args: []arg{banks, u8("song"), u8("operation"), bu8("param1", 0), bu16("param2", 1)}},
	0xFE: dest("CHMST"),
	0xFF: none("GAMEOVER"),
}

// specialOpcodes maps the sub-opcodes of SPECIAL to their encoding.
var specialOpcodes = map[byte]*definition{
	0xF5: single("ARROW", "enabled"),
	0xF6: single("PNAME", "unknown"),
	0xF7: {mnemonic: "GMSPD", args: []arg{u8("unknown"), u8("speed")}},
	0xF8: {mnemonic: "SMSPD", args: []arg{u8("unknown"), u8("speed")}},
	0xF9: none("FLMAT"),
	0xFA: none("FLITM"),
	0xFB: single("BTLCK", "locked"),
	0xFC: single("MVLCK", "locked"),
	0xFD: {mnemonic: "SPCNM", args: []arg{u8("character"), u8("text")}},
	0xFE: none("RSGLB"),
	0xFF: none("CLITM"),
}

func decodeSpecial(d *decoder) error {
	position := d.c.Position()
	sub, err := d.c.ReadUInt8()
	if err != nil {
		return err
	}
	def, ok := specialOpcodes[sub]
	if !ok {
		return &instruction.OpcodeError{Opcode: sub, Offset: position, Err: instruction.ErrUnsupportedOpcode}
	}
	d.op.SubOpcode = &sub
	d.op.Mnemonic = def.mnemonic
	return d.decodeArgs(def.args)
}

// kawaiHeaderSize is the size of the opcode, length and command bytes.
const kawaiHeaderSize = 3

func decodeKawai(d *decoder) error {
	length, err := d.c.ReadUInt8()
	if err != nil {
		return err
	}
	command, err := d.c.ReadUInt8()
	if err != nil {
		return err
	}
	d.op.SubOpcode = &command
	d.add("length", instruction.Literal(length))
	d.add("command", instruction.Literal(command))

	params, err := readKawaiParams(d.c, int(length)-kawaiHeaderSize)
	if err != nil {
		return err
	}
	for i, p := range params {
		d.add(kawaiParamName(i), instruction.Literal(p))
	}
	return nil
}

func readKawaiParams(c *cursor.Cursor, n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	return c.ReadBytes(n)
}

func kawaiParamName(i int) string {
	return "param" + strconv.Itoa(i+1)
}
