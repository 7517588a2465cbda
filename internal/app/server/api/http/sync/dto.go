package sync

import "gastos/internal/domain/sync"

type replaceAllInput struct {
	Body sync.PushRequest
}

type replaceAllOutput struct {
	Status int
	Body   sync.PushResponse
}

type getAllInput struct{}

type getAllOutput struct {
	Status int
	Body   sync.PullResponse
}
