package mathx

// ScaleToTop maps an 8-bit level in [0,ceil] onto a hardware counter range
// [0,top]. Levels above ceil are clamped. ceil==0 yields 0.
func ScaleToTop(level, ceil uint8, top uint32) uint32 {
	if ceil == 0 {
		return 0
	}
	level = Min(level, ceil)
	return uint32(uint64(level) * uint64(top) / uint64(ceil))
}
