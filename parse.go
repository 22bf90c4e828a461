package iterbot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Step is one parsed model response.
//
// At most one of Action and FinalAnswer is populated. When a response
// carries both labels the final answer wins and the action is discarded.
type Step struct {
	// Thought is the reasoning text, if any. A response with no labels at
	// all is treated as a bare thought.
	Thought string

	// Action is the requested tool name. Empty when the step carries no
	// usable action.
	Action string

	// ActionInput holds the decoded Action Input object. Non-nil exactly
	// when Action is set; {} when the response had no Action Input block.
	ActionInput map[string]any

	// FinalAnswer is the answer text. Meaningful only when Final is true.
	FinalAnswer string

	// Final reports whether a Final Answer label was present.
	Final bool

	// ParseErr is set when an Action label was present but unusable
	// (missing tool name, or Action Input that does not decode to a JSON
	// object). The action fields stay empty so the bad action can never
	// be dispatched.
	ParseErr error
}

// Labels recognized at line start, case-insensitively. Action Input is
// matched before Action so the longer label wins.
const (
	labelThought     = "thought:"
	labelActionInput = "action input:"
	labelAction      = "action:"
	labelFinalAnswer = "final answer:"
)

var labelOrder = []string{labelFinalAnswer, labelActionInput, labelAction, labelThought}

// segment is a run of lines following one label.
type segment struct {
	label string
	lines []string
}

func (s *segment) text() string {
	return strings.TrimSpace(strings.Join(s.lines, "\n"))
}

// ParseResponse scans a raw model response for the ReAct labels.
//
// The scanner is tolerant: labels match case-insensitively after optional
// indentation, unlabeled lines attach to the preceding label, and text
// before the first label is ignored. A response without any label is a
// bare thought. ParseResponse never fails; malformed actions are reported
// through Step.ParseErr.
func ParseResponse(text string) Step {
	segs := splitSegments(text)

	var thoughtSeg, actionSeg, inputSeg, finalSeg *segment
	for i := range segs {
		seg := &segs[i]
		switch seg.label {
		case labelThought:
			if thoughtSeg == nil {
				thoughtSeg = seg
			}
		case labelAction:
			if actionSeg == nil {
				actionSeg = seg
			}
		case labelActionInput:
			if inputSeg == nil {
				inputSeg = seg
			}
		case labelFinalAnswer:
			if finalSeg == nil {
				finalSeg = seg
			}
		}
	}

	var step Step
	if thoughtSeg != nil {
		step.Thought = thoughtSeg.text()
	} else if actionSeg == nil && inputSeg == nil && finalSeg == nil {
		step.Thought = strings.TrimSpace(text)
	}

	// Final answer wins over a simultaneous action.
	if finalSeg != nil {
		step.Final = true
		step.FinalAnswer = finalSeg.text()
		return step
	}

	if actionSeg == nil {
		return step
	}

	name := cleanToolName(actionSeg.lines[0])
	if name == "" {
		step.ParseErr = ErrMissingToolName
		return step
	}

	input := ""
	if inputSeg != nil {
		input = inputSeg.text()
	}
	args, err := decodeActionInput(input)
	if err != nil {
		step.ParseErr = err
		return step
	}

	step.Action = name
	step.ActionInput = args
	return step
}

// splitSegments cuts the response into label-headed segments. The leading
// segment (label "") collects any text before the first label.
func splitSegments(text string) []segment {
	segs := []segment{{}}
	for _, line := range strings.Split(text, "\n") {
		matched := false
		for _, label := range labelOrder {
			rest, ok := matchLabel(line, label)
			if !ok {
				continue
			}
			segs = append(segs, segment{label: label, lines: []string{rest}})
			matched = true
			break
		}
		if !matched {
			segs[len(segs)-1].lines = append(segs[len(segs)-1].lines, line)
		}
	}
	return segs
}

// matchLabel reports whether line starts with label after optional
// indentation, returning the text after the label.
func matchLabel(line, label string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(label) {
		return "", false
	}
	if !strings.EqualFold(trimmed[:len(label)], label) {
		return "", false
	}
	return strings.TrimSpace(trimmed[len(label):]), true
}

// cleanToolName extracts the tool name from an Action line. Models decorate
// names with quotes, backticks, or call parentheses; those are stripped.
func cleanToolName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.Trim(name, "`\"'")
	name = strings.TrimSuffix(name, "()")
	return strings.TrimSpace(name)
}

// decodeActionInput decodes the Action Input block into an argument map.
// An empty block means no arguments. Syntactically broken JSON gets one
// repair attempt before the action is rejected.
func decodeActionInput(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}

	var args map[string]any
	err := json.Unmarshal([]byte(raw), &args)
	if err == nil {
		if args == nil {
			args = map[string]any{}
		}
		return args, nil
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr == nil {
			var repairedArgs map[string]any
			if err2 := json.Unmarshal([]byte(repaired), &repairedArgs); err2 == nil && repairedArgs != nil {
				return repairedArgs, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrInvalidActionInput, err)
}
