package react

import (
	"encoding/json"
	"fmt"
	"io"
)

// The verbose stream mirrors the response grammar so a reader can follow
// the run the same way the model reports it. A nil writer silences all
// emitters; Run passes nil unless verbose mode is on.

func emitThought(w io.Writer, thought string) {
	if w == nil || thought == "" {
		return
	}
	fmt.Fprintf(w, "Thought: %s\n", thought)
}

func emitAction(w io.Writer, name string, args map[string]any) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "Action: %s\n", name)

	data, err := json.Marshal(args)
	if err != nil {
		data = []byte("{}")
	}
	fmt.Fprintf(w, "Action Input: %s\n", data)
}

func emitObservation(w io.Writer, observation string) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "Observation: %s\n", observation)
}

func emitFinal(w io.Writer, answer string) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "Final Answer: %s\n", answer)
}
