package utils

// CalculateOffset returns the SQL offset for a 1-based page
func CalculateOffset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}
