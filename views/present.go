package views

import (
	"rental_browser/loader"
	"rental_browser/models"
)

// Block is the part of the result area that gets rendered.
type Block int

const (
	BlockSpinner Block = iota
	BlockError
	BlockEmpty
	BlockResults
)

type Presentation struct {
	Block      Block
	ShowPager  bool
	TotalPages int
}

// Present decides what the result area shows. It only looks at the latest
// state, so a count left over from an earlier page can never show a pager
// over an empty result.
func Present(st loader.State[models.ResultPage], pageSize int) Presentation {
	switch st.Status {
	case loader.Idle, loader.Loading:
		return Presentation{Block: BlockSpinner, TotalPages: 1}
	case loader.Failure:
		return Presentation{Block: BlockError, TotalPages: 1}
	}
	if len(st.Data.Items) == 0 {
		return Presentation{Block: BlockEmpty, TotalPages: st.Data.TotalPages(pageSize)}
	}
	return Presentation{
		Block:      BlockResults,
		ShowPager:  true,
		TotalPages: st.Data.TotalPages(pageSize),
	}
}
