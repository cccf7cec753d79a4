package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost blends the cost of incoming stock into the current unit
// cost (domain service).
// NewCost = ((OnHand * CurrentCost) + (ReceivedQty * ReceivedCost)) / (OnHand + ReceivedQty)
func WeightedAverageCost(onHand, currentCost, receivedQty, receivedCost decimal.Decimal) decimal.Decimal {
	sum := onHand.Add(receivedQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := onHand.Mul(currentCost).Add(receivedQty.Mul(receivedCost))
	return num.Div(sum)
}
