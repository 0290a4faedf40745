package field

// Event is one state change on the field, stamped with the turn it
// happened in.
type Event struct {
	Turn    int            `json:"turn"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Emit stamps an event with the current turn and hands it to the sink.
func (f *Field) Emit(typ string, payload map[string]any) {
	f.emit(Event{Turn: f.turn, Type: typ, Payload: payload})
}
