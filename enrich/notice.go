package enrich

import "fmt"

// NoticeKind classifies a non-fatal event raised while merging samples.
type NoticeKind int

const (
	// NoticeFieldAdded: the operation had no x-code-samples and got an empty list.
	NoticeFieldAdded NoticeKind = iota
	// NoticeFieldExists: x-code-samples was already present and kept as is.
	NoticeFieldExists
	// NoticeSampleAdded: a sample was written into a free position.
	NoticeSampleAdded
	// NoticeSampleExists: the position was occupied and left untouched.
	NoticeSampleExists
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeFieldAdded:
		return "field-added"
	case NoticeFieldExists:
		return "field-exists"
	case NoticeSampleAdded:
		return "sample-added"
	case NoticeSampleExists:
		return "sample-exists"
	default:
		return fmt.Sprintf("notice(%d)", int(k))
	}
}

// Notice describes one merge event. Index and Lang are set for sample notices.
type Notice struct {
	Kind   NoticeKind
	Path   string
	Method string
	Index  int
	Lang   string
}

// NoticeFunc observes notices as they happen.
type NoticeFunc func(Notice)

// Report counts what a run did.
type Report struct {
	Operations     int
	FieldsAdded    int
	FieldsExisting int
	SamplesAdded   int
	SamplesSkipped int
}

func (r *Report) record(k NoticeKind) {
	switch k {
	case NoticeFieldAdded:
		r.FieldsAdded++
	case NoticeFieldExists:
		r.FieldsExisting++
	case NoticeSampleAdded:
		r.SamplesAdded++
	case NoticeSampleExists:
		r.SamplesSkipped++
	}
}

// Changed reports whether the run modified the document.
func (r Report) Changed() bool {
	return r.FieldsAdded > 0 || r.SamplesAdded > 0
}
