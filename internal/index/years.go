package index

type YearSummary struct {
	Year  int
	Count int
}
