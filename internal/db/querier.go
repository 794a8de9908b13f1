package db

import (
	"context"
)

type Querier interface {
	InsertResponse(ctx context.Context, arg InsertResponseParams) (Response, error)
	// ListResponses returns a company's responses, optionally narrowed to one
	// team. A NULL team matches every team.
	ListResponses(ctx context.Context, arg ListResponsesParams) ([]Response, error)
	// ListTeams returns named teams only; the '' bucket is excluded.
	ListTeams(ctx context.Context, companyHash string) ([]TeamDirectory, error)
	UpsertTeamDirectory(ctx context.Context, arg UpsertTeamDirectoryParams) (TeamDirectory, error)
}

var _ Querier = (*Queries)(nil)
