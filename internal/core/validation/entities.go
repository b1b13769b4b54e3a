package validation

import (
	"fmt"

	"github.com/blogplatform/blog/internal/core/domain"
)

func ValidatePost(p *domain.Post) Result {
	if p == nil {
		return failed("post is null")
	}
	return check(p)
}

func ValidateComment(c *domain.Comment) Result {
	if c == nil {
		return failed("comment is null")
	}
	return check(c)
}

func ValidateMessage(m *domain.Message) Result {
	if m == nil {
		return failed("message is null")
	}
	return check(m)
}

// ValidatePostInput checks the editable fields of a post before the author
// snapshot is known.
func ValidatePostInput(title, content string) Result {
	return checkFields(
		fieldRule{"title", title, "required,blogtitle"},
		fieldRule{"content", content, "required,trimmin=10,trimmax=5000"},
	)
}

func ValidateCommentContent(content string) Result {
	return checkFields(fieldRule{"content", content, "required,trimmin=10,trimmax=5000"})
}

func ValidatePosts(posts []*domain.Post) Result {
	return each(posts, ValidatePost)
}

func ValidateComments(comments []*domain.Comment) Result {
	return each(comments, ValidateComment)
}

func ValidateMessages(msgs []*domain.Message) Result {
	return each(msgs, ValidateMessage)
}

// each validates every element and prefixes its errors with a 1-based index.
func each[T any](items []T, fn func(T) Result) Result {
	out := ok()
	for i, item := range items {
		r := fn(item)
		if r.Valid {
			continue
		}
		out.Valid = false
		for _, msg := range r.Errors {
			out.Errors = append(out.Errors, fmt.Sprintf("[%d] %s", i+1, msg))
		}
	}
	return out
}
