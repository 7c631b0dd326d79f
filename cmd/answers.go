package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/aura/internal/assessment"
	"github.com/abhisek/aura/internal/chakra"
)

// readAnswers loads answers from path, or stdin for "-". Two YAML (or JSON)
// shapes are accepted: a map of question id to value,
//
//	root-1: 4
//	root-2: 3
//
// or a list of {question_id, center_id, value} entries. In list form a
// missing center_id is taken from the question.
func readAnswers(path string, stdin io.Reader) ([]assessment.Answer, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	return parseAnswers(data)
}

func parseAnswers(data []byte) ([]assessment.Answer, error) {
	var byID map[string]int
	if err := yaml.Unmarshal(data, &byID); err == nil && len(byID) > 0 {
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		out := make([]assessment.Answer, 0, len(ids))
		for _, id := range ids {
			q, ok := chakra.QuestionByID(id)
			if !ok {
				return nil, fmt.Errorf("unknown question %q", id)
			}
			out = append(out, assessment.Answer{QuestionID: id, CenterID: q.CenterID, Value: byID[id]})
		}
		return out, nil
	}

	var list []assessment.Answer
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	for i := range list {
		a := &list[i]
		if a.CenterID != "" {
			continue
		}
		q, ok := chakra.QuestionByID(a.QuestionID)
		if !ok {
			return nil, fmt.Errorf("answer %d: unknown question %q and no center_id", i+1, a.QuestionID)
		}
		a.CenterID = q.CenterID
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no answers found")
	}
	return list, nil
}
