package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		op   Op
	}{
		{0x00E0, OpCls},
		{0x00EE, OpRet},
		{0x1234, OpJp},
		{0x2345, OpCall},
		{0x3A11, OpSeByte},
		{0x4A11, OpSneByte},
		{0x5AB0, OpSeReg},
		{0x6FAB, OpLdByte},
		{0x7042, OpAddByte},
		{0x8AF0, OpLdReg},
		{0x8AF1, OpOr},
		{0x8AF2, OpAnd},
		{0x8AF3, OpXor},
		{0x8AF4, OpAdd},
		{0x8AF5, OpSub},
		{0x8AF6, OpShr},
		{0x8AF7, OpSubn},
		{0x8AFE, OpShl},
		{0x90F0, OpSneReg},
		{0xA09F, OpLdI},
		{0xBABE, OpJpV0},
		{0xCABE, OpRnd},
		{0xD123, OpDrw},
		{0xE09E, OpSkp},
		{0xE0A1, OpSknp},
		{0xF007, OpLdVxDT},
		{0xF00A, OpLdVxK},
		{0xF015, OpLdDTVx},
		{0xF018, OpLdSTVx},
		{0xF01E, OpAddI},
		{0xF029, OpLdF},
		{0xF033, OpLdB},
		{0xF055, OpStore},
		{0xF065, OpLoad},

		// not instructions
		{0x0000, OpInvalid},
		{0x0123, OpInvalid},
		{0x00FF, OpInvalid},
		{0x5AB1, OpInvalid},
		{0x8AF8, OpInvalid},
		{0x8AFF, OpInvalid},
		{0x90F1, OpInvalid},
		{0xE09F, OpInvalid},
		{0xF0FF, OpInvalid},
	}

	for _, tt := range tests {
		inst := Decode(tt.word)
		assert.Equal(t, tt.op, inst.Op, inst.String())
		assert.Equal(t, tt.word, inst.Word)
	}
}

func TestDecodeOperands(t *testing.T) {
	inst := Decode(0xD123)

	assert.Equal(t, uint8(0x1), inst.X)
	assert.Equal(t, uint8(0x2), inst.Y)
	assert.Equal(t, uint8(0x3), inst.N)
	assert.Equal(t, uint8(0x23), inst.NN)
	assert.Equal(t, uint16(0x123), inst.NNN)
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		word uint16
		want string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1234, "JP     #234"},
		{0x2345, "CALL   #345"},
		{0x6105, "LD     V1, #05"},
		{0x8AF4, "ADD    VA, VF"},
		{0x8A06, "SHR    VA"},
		{0xA09F, "LD     I, #09F"},
		{0xB300, "JP     V0, #300"},
		{0xD123, "DRW    V1, V2, 3"},
		{0xF50A, "LD     V5, K"},
		{0xF233, "LD     B, V2"},
		{0xF355, "LD     [I], V3"},
		{0x5121, "??     #5121"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Decode(tt.word).String())
	}
}
