package dto

import "encoding/json"

const UpcomingMatchesQuery = `
query {
    upcomingMatches {
        id
        name
        status
        scheduledAt
        tournament {
            serie {
                league {
                    shortName
                }
            }
        }
    }
}
`

type GraphQLRequest struct {
	Query string `json:"query"`
}

// GraphQLResponse keeps the payload loose so a missing or oddly shaped
// "data" never fails the decode.
type GraphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []GraphQLError             `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message string `json:"message"`
}
