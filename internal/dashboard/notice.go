package dashboard

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is the toast shown after an action.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}

func success(title, msg string) Notice {
	return Notice{Kind: NoticeSuccess, Title: title, Message: msg}
}
func failure(title, msg string) Notice { return Notice{Kind: NoticeError, Title: title, Message: msg} }

func (n Notice) OK() bool { return n.Kind == NoticeSuccess }
