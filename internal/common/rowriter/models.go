package rowriter

import "encoding/json"

// RO status codes as the vendor defines them.
const (
	StatusStart       = "3"
	StatusISOComplete = "4"
	StatusPMAComplete = "5"
	StatusQCComplete  = "8"
)

// DefaultROType is the repair-order type used everywhere unless the caller
// overrides it.
const DefaultROType = "R"

type loginRequest struct {
	DataServer   string `json:"DataServer"`
	UserName     string `json:"UserName"`
	Password     string `json:"Password"`
	TouchVersion string `json:"TouchVersion"`
	PushID       string `json:"PushID"`
}

type loginResponse struct {
	Token string `json:"Token"`
}

// Labor is a billable operation line on a repair order.
type Labor struct {
	ID          string `json:"ID"`
	Description string `json:"Description"`
}

// ChecklistEntry is a named checklist attached to a repair order.
type ChecklistEntry struct {
	ID   string `json:"ID"`
	Name string `json:"Name"`
}

// RODetail is the vendor's repair-order detail payload. Only the fields the
// bridge reads are modeled; the vendor sends considerably more.
type RODetail struct {
	Requests   string           `json:"Requests"`
	LaborList  []Labor          `json:"LaborList"`
	CheckLists []ChecklistEntry `json:"CheckLists"`
}

// ChecklistItem is one inspection field under a labor operation.
type ChecklistItem struct {
	ID    string `json:"ID"`
	Title string `json:"Title"`
}

// checklistItemsPayload accepts both response shapes GetCheckListItemsV2 is
// known to return: a bare JSON array, or an object with an Items field.
type checklistItemsPayload struct {
	Items []ChecklistItem
}

func (p *checklistItemsPayload) UnmarshalJSON(data []byte) error {
	var items []ChecklistItem
	if err := json.Unmarshal(data, &items); err == nil {
		p.Items = items
		return nil
	}

	var wrapped struct {
		Items []ChecklistItem `json:"Items"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	p.Items = wrapped.Items
	return nil
}
