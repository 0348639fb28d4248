package repository

// ListParams are the cursor pagination parameters shared by the list
// operations. Cursor is the id of the last document of the previous page; an
// empty cursor starts from the beginning.
type ListParams struct {
	Limit  int64
	Cursor string
}

const defaultPageSize = 20

func (p ListParams) limit() int64 {
	if p.Limit <= 0 {
		return defaultPageSize
	}

	return p.Limit
}
