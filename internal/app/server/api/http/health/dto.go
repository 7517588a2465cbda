package health

type Input struct{}

type Output struct {
	Body Response
}

// Response is the liveness payload. Clients probe this endpoint before a
// sync to decide whether the server is reachable.
type Response struct {
	Status string `json:"status" example:"OK" doc:"Liveness of the sync server"`
}
