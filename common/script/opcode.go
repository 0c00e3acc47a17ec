package script

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

// Push-size thresholds of the script command grammar.
const (
	// MaxDirectPushLen is the largest push encoded with a single length
	// byte doubling as the opcode (OP_DATA_1 through OP_DATA_75).
	MaxDirectPushLen = txscript.OP_DATA_75

	// MaxPushData1Len is the largest push encoded with OP_PUSHDATA1.
	MaxPushData1Len = 0xff

	// MaxScriptElementSize is the maximum number of bytes a single data
	// push may carry.
	MaxScriptElementSize = txscript.MaxScriptElementSize
)

// opcodeNames maps every named opcode byte to its human-readable name.  The
// direct push bytes OP_DATA_1 through OP_DATA_75 are data, not opcodes, and
// are intentionally absent, as are the unassigned byte values.
var opcodeNames = map[byte]string{
	// Data push opcodes.
	txscript.OP_0:         "OP_0",
	txscript.OP_PUSHDATA1: "OP_PUSHDATA1",
	txscript.OP_PUSHDATA2: "OP_PUSHDATA2",
	txscript.OP_PUSHDATA4: "OP_PUSHDATA4",
	txscript.OP_1NEGATE:   "OP_1NEGATE",
	txscript.OP_RESERVED:  "OP_RESERVED",
	txscript.OP_1:         "OP_1",
	txscript.OP_2:         "OP_2",
	txscript.OP_3:         "OP_3",
	txscript.OP_4:         "OP_4",
	txscript.OP_5:         "OP_5",
	txscript.OP_6:         "OP_6",
	txscript.OP_7:         "OP_7",
	txscript.OP_8:         "OP_8",
	txscript.OP_9:         "OP_9",
	txscript.OP_10:        "OP_10",
	txscript.OP_11:        "OP_11",
	txscript.OP_12:        "OP_12",
	txscript.OP_13:        "OP_13",
	txscript.OP_14:        "OP_14",
	txscript.OP_15:        "OP_15",
	txscript.OP_16:        "OP_16",

	// Control opcodes.
	txscript.OP_NOP:      "OP_NOP",
	txscript.OP_VER:      "OP_VER",
	txscript.OP_IF:       "OP_IF",
	txscript.OP_NOTIF:    "OP_NOTIF",
	txscript.OP_VERIF:    "OP_VERIF",
	txscript.OP_VERNOTIF: "OP_VERNOTIF",
	txscript.OP_ELSE:     "OP_ELSE",
	txscript.OP_ENDIF:    "OP_ENDIF",
	txscript.OP_VERIFY:   "OP_VERIFY",
	txscript.OP_RETURN:   "OP_RETURN",

	// Stack opcodes.
	txscript.OP_TOALTSTACK:   "OP_TOALTSTACK",
	txscript.OP_FROMALTSTACK: "OP_FROMALTSTACK",
	txscript.OP_2DROP:        "OP_2DROP",
	txscript.OP_2DUP:         "OP_2DUP",
	txscript.OP_3DUP:         "OP_3DUP",
	txscript.OP_2OVER:        "OP_2OVER",
	txscript.OP_2ROT:         "OP_2ROT",
	txscript.OP_2SWAP:        "OP_2SWAP",
	txscript.OP_IFDUP:        "OP_IFDUP",
	txscript.OP_DEPTH:        "OP_DEPTH",
	txscript.OP_DROP:         "OP_DROP",
	txscript.OP_DUP:          "OP_DUP",
	txscript.OP_NIP:          "OP_NIP",
	txscript.OP_OVER:         "OP_OVER",
	txscript.OP_PICK:         "OP_PICK",
	txscript.OP_ROLL:         "OP_ROLL",
	txscript.OP_ROT:          "OP_ROT",
	txscript.OP_SWAP:         "OP_SWAP",
	txscript.OP_TUCK:         "OP_TUCK",

	// Splice opcodes.
	txscript.OP_CAT:    "OP_CAT",
	txscript.OP_SUBSTR: "OP_SUBSTR",
	txscript.OP_LEFT:   "OP_LEFT",
	txscript.OP_RIGHT:  "OP_RIGHT",
	txscript.OP_SIZE:   "OP_SIZE",

	// Bitwise logic opcodes.
	txscript.OP_INVERT:      "OP_INVERT",
	txscript.OP_AND:         "OP_AND",
	txscript.OP_OR:          "OP_OR",
	txscript.OP_XOR:         "OP_XOR",
	txscript.OP_EQUAL:       "OP_EQUAL",
	txscript.OP_EQUALVERIFY: "OP_EQUALVERIFY",
	txscript.OP_RESERVED1:   "OP_RESERVED1",
	txscript.OP_RESERVED2:   "OP_RESERVED2",

	// Numeric related opcodes.
	txscript.OP_1ADD:               "OP_1ADD",
	txscript.OP_1SUB:               "OP_1SUB",
	txscript.OP_2MUL:               "OP_2MUL",
	txscript.OP_2DIV:               "OP_2DIV",
	txscript.OP_NEGATE:             "OP_NEGATE",
	txscript.OP_ABS:                "OP_ABS",
	txscript.OP_NOT:                "OP_NOT",
	txscript.OP_0NOTEQUAL:          "OP_0NOTEQUAL",
	txscript.OP_ADD:                "OP_ADD",
	txscript.OP_SUB:                "OP_SUB",
	txscript.OP_MUL:                "OP_MUL",
	txscript.OP_DIV:                "OP_DIV",
	txscript.OP_MOD:                "OP_MOD",
	txscript.OP_LSHIFT:             "OP_LSHIFT",
	txscript.OP_RSHIFT:             "OP_RSHIFT",
	txscript.OP_BOOLAND:            "OP_BOOLAND",
	txscript.OP_BOOLOR:             "OP_BOOLOR",
	txscript.OP_NUMEQUAL:           "OP_NUMEQUAL",
	txscript.OP_NUMEQUALVERIFY:     "OP_NUMEQUALVERIFY",
	txscript.OP_NUMNOTEQUAL:        "OP_NUMNOTEQUAL",
	txscript.OP_LESSTHAN:           "OP_LESSTHAN",
	txscript.OP_GREATERTHAN:        "OP_GREATERTHAN",
	txscript.OP_LESSTHANOREQUAL:    "OP_LESSTHANOREQUAL",
	txscript.OP_GREATERTHANOREQUAL: "OP_GREATERTHANOREQUAL",
	txscript.OP_MIN:                "OP_MIN",
	txscript.OP_MAX:                "OP_MAX",
	txscript.OP_WITHIN:             "OP_WITHIN",

	// Crypto opcodes.
	txscript.OP_RIPEMD160:           "OP_RIPEMD160",
	txscript.OP_SHA1:                "OP_SHA1",
	txscript.OP_SHA256:              "OP_SHA256",
	txscript.OP_HASH160:             "OP_HASH160",
	txscript.OP_HASH256:             "OP_HASH256",
	txscript.OP_CODESEPARATOR:       "OP_CODESEPARATOR",
	txscript.OP_CHECKSIG:            "OP_CHECKSIG",
	txscript.OP_CHECKSIGVERIFY:      "OP_CHECKSIGVERIFY",
	txscript.OP_CHECKMULTISIG:       "OP_CHECKMULTISIG",
	txscript.OP_CHECKMULTISIGVERIFY: "OP_CHECKMULTISIGVERIFY",
	txscript.OP_CHECKSIGADD:         "OP_CHECKSIGADD",

	// Reserved opcodes.
	txscript.OP_NOP1:                "OP_NOP1",
	txscript.OP_CHECKLOCKTIMEVERIFY: "OP_CHECKLOCKTIMEVERIFY",
	txscript.OP_CHECKSEQUENCEVERIFY: "OP_CHECKSEQUENCEVERIFY",
	txscript.OP_NOP4:                "OP_NOP4",
	txscript.OP_NOP5:                "OP_NOP5",
	txscript.OP_NOP6:                "OP_NOP6",
	txscript.OP_NOP7:                "OP_NOP7",
	txscript.OP_NOP8:                "OP_NOP8",
	txscript.OP_NOP9:                "OP_NOP9",
	txscript.OP_NOP10:               "OP_NOP10",

	// Bitcoin Core internal use opcodes.  Defined here for completeness.
	txscript.OP_SMALLINTEGER: "OP_SMALLINTEGER",
	txscript.OP_PUBKEYS:      "OP_PUBKEYS",
	txscript.OP_PUBKEYHASH:   "OP_PUBKEYHASH",
	txscript.OP_PUBKEY:       "OP_PUBKEY",

	txscript.OP_INVALIDOPCODE: "OP_INVALIDOPCODE",
}

// OpcodeName returns the human-readable name of op.  Unnamed byte values
// produce a synthesized OP_UNKNOWN_<hex> name rather than an error.
func OpcodeName(op byte) string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OP_UNKNOWN_%x", op)
}

// OpcodeByName is a map that can be used to lookup an opcode by its
// human-readable name (OP_CHECKSIG, OP_HASH160, etc).
var OpcodeByName = make(map[string]byte)

func init() {
	// Initialize the opcode name to value map using the contents of the
	// name table.  Also add entries for "OP_FALSE", "OP_TRUE", "OP_NOP2"
	// and "OP_NOP3" since they are aliases for "OP_0", "OP_1",
	// "OP_CHECKLOCKTIMEVERIFY" and "OP_CHECKSEQUENCEVERIFY" respectively.
	for value, name := range opcodeNames {
		OpcodeByName[name] = value
	}
	OpcodeByName["OP_FALSE"] = txscript.OP_FALSE
	OpcodeByName["OP_TRUE"] = txscript.OP_TRUE
	OpcodeByName["OP_NOP2"] = txscript.OP_CHECKLOCKTIMEVERIFY
	OpcodeByName["OP_NOP3"] = txscript.OP_CHECKSEQUENCEVERIFY
}
