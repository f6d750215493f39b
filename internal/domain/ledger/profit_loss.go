package ledger

// ProfitLoss summarizes a session's cash flow by category
type ProfitLoss struct {
	TradingRevenue int `json:"tradingRevenue"`
	TradingCosts   int `json:"tradingCosts"`
	FuelCosts      int `json:"fuelCosts"`
	Net            int `json:"net"`
	Transactions   int `json:"transactions"`
}

// Summarize folds transactions into a profit/loss statement. Costs are reported
// as positive numbers; Net is revenue minus costs.
func Summarize(transactions []*Transaction) ProfitLoss {
	var pl ProfitLoss
	for _, t := range transactions {
		switch t.Category() {
		case CategoryTradingRevenue:
			pl.TradingRevenue += t.Amount()
		case CategoryTradingCosts:
			pl.TradingCosts -= t.Amount()
		case CategoryFuelCosts:
			pl.FuelCosts -= t.Amount()
		}
		pl.Net += t.Amount()
		pl.Transactions++
	}
	return pl
}
