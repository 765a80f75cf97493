package model

import "github.com/shopspring/decimal"

// TpSlRequest take profit and stop loss legs to attach. A leg is requested when both its price and
// trigger are set and absent when neither is.
type TpSlRequest struct {
	TakeProfit        *decimal.Decimal `json:"takeProfit"`
	TakeProfitTrigger TriggerType      `json:"takeProfitTrigger"`
	StopLoss          *decimal.Decimal `json:"stopLoss"`
	StopLossTrigger   TriggerType      `json:"stopLossTrigger"`
}

// legValid both-or-neither of price and trigger, and a known trigger when present
func legValid(price *decimal.Decimal, trigger TriggerType) bool {
	if price == nil {
		return trigger == ""
	}
	return trigger.Valid()
}

// Valid pairing of both legs is consistent
func (r *TpSlRequest) Valid() bool {
	return legValid(r.TakeProfit, r.TakeProfitTrigger) && legValid(r.StopLoss, r.StopLossTrigger)
}
