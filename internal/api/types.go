package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ChargeState is the server-reported charging session state. The client
// only observes it; transitions are decided server-side.
type ChargeState string

const (
	StateNotCharging       ChargeState = "NOTCHARGING"
	StateWaitingStage1     ChargeState = "WAITINGSTAGE1"
	StateWaitingStage2     ChargeState = "WAITINGSTAGE2"
	StateCharging          ChargeState = "CHARGING"
	StateChangeModeRequeue ChargeState = "CHANGEMODEREQUEUE"
	StateFaultRequeue      ChargeState = "FAULTREQUEUE"
)

var stateText = map[ChargeState]string{
	StateNotCharging:       "没有充电请求",
	StateWaitingStage1:     "在等候区等待",
	StateWaitingStage2:     "在充电区等待",
	StateCharging:          "正在充电",
	StateChangeModeRequeue: "充电模式更改 重新排队",
	StateFaultRequeue:      "充电桩故障",
}

// DisplayText returns the localized status label, falling back to the
// raw value for states this client does not know.
func (s ChargeState) DisplayText() string {
	if text, ok := stateText[s]; ok {
		return text
	}
	return string(s)
}

// QueueStatus is one observation of the user's place in the system.
type QueueStatus struct {
	State       ChargeState `json:"cur_state"`
	QueueLength int         `json:"queue_len"`
	ChargeID    string      `json:"charge_id"`
}

// QueueText renders the queue position. A length of -1 means "not
// applicable" and renders blank.
func (q QueueStatus) QueueText() string {
	if q.QueueLength == -1 {
		return ""
	}
	return fmt.Sprintf("前有%d人", q.QueueLength)
}

// ServerTime is the service clock, used instead of the local clock for
// date-scoped queries.
type ServerTime struct {
	DateTime  string `json:"datetime"`
	Timestamp int64  `json:"timestamp"`
}

// ChargeMode is the wire encoding of the charging speed option.
type ChargeMode string

const (
	ModeFast    ChargeMode = "F"
	ModeTrickle ChargeMode = "T"
)

// ParseChargeMode translates a human-facing label. Anything that is not
// a fast-charging label selects trickle.
func ParseChargeMode(label string) ChargeMode {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "快充", "fast", "f":
		return ModeFast
	}
	return ModeTrickle
}

// LoginResult is the /login payload.
type LoginResult struct {
	Token   string `json:"token"`
	IsAdmin bool   `json:"is_admin"`
}

// Bill is one finalized charging bill. Field names and mixed value
// types follow the service payload exactly; values pass through to
// display untouched.
type Bill struct {
	BillID        string      `json:"bill_id"`
	CreateTime    string      `json:"create_time"`
	PileID        string      `json:"pile_id"`
	ChargedAmount json.Number `json:"charged_amount"`
	ChargedTime   json.Number `json:"charged_time"`
	BeginTime     string      `json:"begin_time"`
	EndTime       string      `json:"end_time"`
	ChargingCost  string      `json:"charging_cost"`
	ServiceCost   json.Number `json:"service_cost"`
	TotalCost     json.Number `json:"total_cost"`
}

// OrderDetail is one line of a bill's order breakdown. The service's
// field spellings (Bill_id, chargedAamount, data) are the wire contract.
type OrderDetail struct {
	CarID           string      `json:"car_id"`
	Date            string      `json:"data"`
	BillID          string      `json:"Bill_id"`
	PileNumber      string      `json:"chargedPileNum"`
	ChargedAmount   json.Number `json:"chargedAamount"`
	ChargedDuration json.Number `json:"chargedDuration"`
	StartTime       string      `json:"StartTime"`
	EndTime         string      `json:"EndTime"`
	ChargeFee       json.Number `json:"ChargeFee"`
	ServiceFee      json.Number `json:"ServiceFee"`
	SubtotalFee     json.Number `json:"subtotalFee"`
}
