package ccast

// RegisterClass is the closed set of MIPS/R5900 register banks a dbx
// register number can resolve into (spec.md §6, RegisterStorage
// "resolved through a fixed table"). Grounded on registers.h's
// `RegisterClass` enum.
type RegisterClass int8

const (
	RegisterClassInvalid    RegisterClass = -1
	RegisterClassGPR        RegisterClass = 0
	RegisterClassSpecialGPR RegisterClass = 1
	RegisterClassSCP        RegisterClass = 2
	RegisterClassFPU        RegisterClass = 3
	RegisterClassSpecialFPU RegisterClass = 4
	RegisterClassVU0        RegisterClass = 5
)

// dbxRegisterRanges lays the six MIPS register banks out contiguously in
// dbx numbering order, so a single dbx_register_number can be resolved by
// walking the table and subtracting the running offset. Grounded on
// registers.h's bank sizes (GPR/SCP/FPU/VU0 all 32-wide, SpecialGPR 6-wide,
// SpecialFPU 3-wide); the original's own `map_dbx_register_index` body
// wasn't present in this retrieval, so the bank order and boundaries follow
// the header's declared enum layout rather than a ported implementation.
var dbxRegisterRanges = []struct {
	class RegisterClass
	size  int32
}{
	{RegisterClassGPR, 32},
	{RegisterClassSpecialGPR, 6},
	{RegisterClassSCP, 32},
	{RegisterClassFPU, 32},
	{RegisterClassSpecialFPU, 3},
	{RegisterClassVU0, 32},
}

// ResolveDBXRegister maps a raw dbx register number to the (class, index)
// pair a presentation layer renders as a register name (spec.md §6,
// RegisterStorage). An out-of-range number resolves to
// RegisterClassInvalid.
func ResolveDBXRegister(number int32) (RegisterClass, int32) {
	if number < 0 {
		return RegisterClassInvalid, -1
	}
	offset := int32(0)
	for _, bank := range dbxRegisterRanges {
		if number < offset+bank.size {
			return bank.class, number - offset
		}
		offset += bank.size
	}
	return RegisterClassInvalid, -1
}
