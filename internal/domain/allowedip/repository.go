package allowedip

import (
	"context"
)

type AllowedIPRepository interface {
	Create(ctx context.Context, ip AllowedIP) (AllowedIP, error)
	List(ctx context.Context) ([]AllowedIP, error)
	Delete(ctx context.Context, id string) error
}
