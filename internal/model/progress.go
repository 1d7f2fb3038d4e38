package model

// ScanProgress is a snapshot of traversal totals. The scanner publishes one
// per scan after enumeration finishes, so Scanned* always equals Total*.
type ScanProgress struct {
	TotalDirs    uint64 `json:"total_dirs"`
	TotalBytes   uint64 `json:"total_bytes"`
	ScannedDirs  uint64 `json:"scanned_dirs"`
	ScannedBytes uint64 `json:"scanned_bytes"`
}

// Fraction returns scanned bytes over total bytes in [0, 1]. An empty scan
// counts as complete.
func (p ScanProgress) Fraction() float64 {
	if p.TotalBytes == 0 {
		return 1
	}
	f := float64(p.ScannedBytes) / float64(p.TotalBytes)
	if f > 1 {
		return 1
	}
	return f
}

// Complete reports whether every counted entry has been scanned
func (p ScanProgress) Complete() bool {
	return p.ScannedDirs == p.TotalDirs && p.ScannedBytes == p.TotalBytes
}
