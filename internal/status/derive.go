package status

// StockDeriver classifies stock records from their level alone:
// an empty (or negative) level is out, a level at or below the minimum is low,
// anything above the minimum is in stock.
func StockDeriver(out, low, in Canonical) Deriver {
	return func(rec Record) (Canonical, bool) {
		if rec.Stock == nil {
			return "", false
		}
		switch {
		case rec.Stock.Current <= 0:
			return out, true
		case rec.Stock.Current <= rec.Stock.Min:
			return low, true
		default:
			return in, true
		}
	}
}

// OverdueDeriver marks a title overdue once it has any days past due, unless
// its raw status is one of the terminal statuses (e.g. paid).
func OverdueDeriver(overdue Canonical, terminal ...Canonical) Deriver {
	final := make(map[string]bool, len(terminal))
	for _, t := range terminal {
		final[string(t)] = true
	}
	return func(rec Record) (Canonical, bool) {
		if rec.DaysPastDue == nil || *rec.DaysPastDue <= 0 {
			return "", false
		}
		if final[normalize(rec.RawStatus)] {
			return "", false
		}
		return overdue, true
	}
}
