package patreon

import "time"

// Webhook is a registered event subscription. Triggers is the list of
// event names it fires for.
type Webhook struct {
	ID                        string    `json:"id" patreon:"optional"`
	LastAttemptedAt           time.Time `json:"last_attempted_at"`
	NumConsecutiveTimesFailed int       `json:"num_consecutive_times_failed"`
	Paused                    bool      `json:"paused"`
	Secret                    string    `json:"secret"`
	Triggers                  any       `json:"triggers" patreon:"optional"`
	URI                       string    `json:"uri"`
}

func (Webhook) kind() Kind { return KindWebhook }
func (w Webhook) id() string { return w.ID }

func (w *Webhook) UnmarshalJSON(data []byte) error {
	return unmarshal(data, w)
}
