package main

import (
	"github.com/veridian-systems/sixtick/internal/cpu"
	"github.com/veridian-systems/sixtick/internal/system"
)

// samplePrograms is the bundled menu catalogue: every scenario from the
// specification's worked examples, each with its {A,X,Y,Z,C} oracle where
// one applies. SYS-driven console output has no register oracle; its
// correctness is judged by the printed text instead.
var samplePrograms = []system.Program{
	{
		Name: "Basic transfer (LDA/TAX/LDA/TXA)",
		Code: []byte{0xA9, 0x05, 0xAA, 0xA9, 0x03, 0x8A, 0x00},
		Expected: &cpu.Snapshot{A: 0x05, X: 0x05, Y: 0x00, Z: false, C: false},
	},
	{
		Name: "String print (SYS X=3)",
		Code: []byte{
			0xA2, 0x03,
			0xFF, 0x06, 0x00,
			0x00,
			0x48, 0x65, 0x6C, 0x6C, 0x6F, 0x21, 0x00,
		},
	},
	{
		Name: "ADC without carry",
		Code: []byte{
			0xA9, 0xFE,
			0x8D, 0x10, 0x00,
			0xA9, 0x01,
			0x6D, 0x10, 0x00,
			0x00,
		},
		Expected: &cpu.Snapshot{A: 0xFF, X: 0, Y: 0, Z: false, C: false},
	},
	{
		Name: "ADC producing carry",
		Code: []byte{
			0xA9, 0xFF,
			0x8D, 0x10, 0x00,
			0xA9, 0x02,
			0x6D, 0x10, 0x00,
			0x00,
		},
		Expected: &cpu.Snapshot{A: 0x01, X: 0, Y: 0, Z: false, C: true},
	},
	{
		Name: "Branch taken (CPX/BNE)",
		Code: []byte{
			0xA2, 0x05,
			0xEC, 0x20, 0x00,
			0xD0, 0x02,
			0xEA, 0xEA,
			0x00,
		},
		Expected: &cpu.Snapshot{A: 0, X: 0x05, Y: 0, Z: false, C: true},
	},
	{
		Name: "Integer print (SYS X=1)",
		Code: []byte{
			0xA9, 0x2A,
			0x8D, 0x40, 0x00,
			0xAC, 0x40, 0x00,
			0xA2, 0x01,
			0xFF,
			0x00,
		},
	},
}
