package model

// Snapshot is the persisted state payload: everything the store needs
// to rebuild itself at startup. Collections are never nil once a
// snapshot has passed through normalization.
type Snapshot struct {
	Transactions []Transaction `json:"transactions"`
	Categories   []Category    `json:"categories"`
}

// Normalize coerces a snapshot read from storage into a well-formed
// one: nil collections become empty, and entries missing an ID are
// dropped rather than propagated.
func (s *Snapshot) Normalize() {
	txns := make([]Transaction, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		if t.ID == "" {
			continue
		}
		txns = append(txns, t)
	}
	s.Transactions = txns

	cats := make([]Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		if c.ID == "" {
			continue
		}
		cats = append(cats, c)
	}
	s.Categories = cats
}
