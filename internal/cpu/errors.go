package cpu

import "errors"

// Error kinds the pipeline can raise at a tick boundary. Every one of
// them is caught inside Tick; none ever escapes to the caller.
//
// ErrMemoryOutOfRange is declared for completeness with the taxonomy but
// is not normally reachable: addresses are uint16, so they are always in
// 0..65535. ErrLoadProtocolViolation names the case of reading the MDR
// before its matching read has completed; the two-phase trigger/consume
// protocol in internal/memory and internal/mmu is structured so that
// never happens, but the error kind exists for whichever caller notices
// it anyway.
var (
	ErrUnknownOpcode         = errors.New("unknown opcode")
	ErrInvalidSyscall        = errors.New("invalid syscall sub-code")
	ErrMemoryOutOfRange      = errors.New("memory address out of range")
	ErrLoadProtocolViolation = errors.New("load protocol violation")
)
