package dashboard

import (
	"context"

	"motopartes/internal/modules/finder"
)

const titleSearching = "Buscando repuestos"

// FinderForm is the storefront's motorcycle finder: three dependent
// selects and a submit that only reaches the server once all are set.
type FinderForm struct {
	*finder.Selection

	client  *Client
	visitor string
	recent  finder.RecentSearches
}

// LoadFinderForm fetches the option set and returns an empty form.
func LoadFinderForm(ctx context.Context, client *Client, visitor string) (*FinderForm, error) {
	opts, err := client.FinderOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &FinderForm{Selection: finder.NewSelection(opts), client: client, visitor: visitor}, nil
}

func (f *FinderForm) Recent() finder.RecentSearches { return f.recent }

// Submit posts the current selection. An incomplete selection yields the
// warning notice and no request.
func (f *FinderForm) Submit(ctx context.Context) (*FinderResult, Notice, error) {
	if err := f.Validate(); err != nil {
		return nil, failure(finder.MsgIncompleteTitle, finder.MsgIncompleteBody), err
	}
	res, err := f.client.FinderSearch(ctx, f.visitor, f.Search())
	if err != nil {
		return nil, failure(titleFailed, err.Error()), err
	}
	f.recent = res.Recent
	return res, success(titleSearching, res.Message), nil
}
