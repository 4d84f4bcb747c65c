package httpapi

import "github.com/mikey/markerscan/internal/core"

type analyzeRequest struct {
	Text      string  `json:"text"`
	Timestamp *string `json:"timestamp"`
	Sender    *string `json:"sender"`
}

type messageDTO struct {
	Content   string  `json:"content"`
	Timestamp *string `json:"timestamp"`
	Author    *string `json:"author"`
}

// batchRequest carries either inline messages or a source query
type batchRequest struct {
	Messages        []messageDTO `json:"messages"`
	Limit           int          `json:"limit"`
	Since           string       `json:"since"`
	Authors         []string     `json:"authors"`
	MinScore        float64      `json:"min_score"`
	TopN            int          `json:"top_n"`
	MinSignificance string       `json:"min_significance"`
}

func (r *batchRequest) query() core.Query {
	return core.Query{Limit: r.Limit, Since: r.Since, Authors: r.Authors}
}

func (r *batchRequest) messages() []core.Message {
	msgs := make([]core.Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		msgs = append(msgs, core.Message{Content: m.Content, Timestamp: m.Timestamp, Author: m.Author})
	}
	return msgs
}
