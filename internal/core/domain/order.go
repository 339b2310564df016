package domain

// Order is one unit of demand. Orders are identified only by their position
// in the shared order list; deleting an order shifts every later index.
type Order struct {
	Item string `json:"item"`
	Qty  int    `json:"qty"`
}

// SummaryLine is the aggregated quantity ordered for one item.
type SummaryLine struct {
	Item string `json:"item"`
	Qty  int    `json:"qty"`
}

// Summary aggregates the order list by item.
type Summary struct {
	Date   string        `json:"date"`
	Totals []SummaryLine `json:"totals"`
	Total  int           `json:"total"`
}

// Summarize totals orders per item, keeping the order in which items first appear.
func Summarize(orders []Order) []SummaryLine {
	lines := make([]SummaryLine, 0)
	pos := make(map[string]int)
	for _, o := range orders {
		i, ok := pos[o.Item]
		if !ok {
			pos[o.Item] = len(lines)
			lines = append(lines, SummaryLine{Item: o.Item, Qty: o.Qty})
			continue
		}
		lines[i].Qty += o.Qty
	}
	return lines
}
