package estatetest

import estate "github.com/iov-one/estate"

// Handler is a mock implementation of the estate.Handler interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding
// method. Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult estate.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult estate.DeliverResult
	DeliverErr    error
}

var _ estate.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes the key value pair on every call and returns err.
// Used to check that failed operations leave no trace in the store.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ estate.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &estate.CheckResult{}, h.Err
}

func (h *WriteHandler) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx) (*estate.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &estate.DeliverResult{}, h.Err
}
