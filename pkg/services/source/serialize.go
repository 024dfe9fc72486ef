package source

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"golang.org/x/sync/singleflight"
)

// SharedFetchTimeout bounds a fetch that no longer follows any caller's
// context.
const SharedFetchTimeout = 2 * time.Minute

type serialized struct {
	src   Source
	mu    sync.Mutex
	group singleflight.Group
}

// Serialized allows at most one fetch of src in flight at a time. Callers
// asking for the same criteria while a fetch runs share its dataset and must
// not modify it. The fetch is detached from the caller that started it, so a
// caller giving up only affects its own wait.
func Serialized(src Source) Source {
	return &serialized{src: src}
}

func (s *serialized) Fetch(ctx context.Context, criteria domain.FilterCriteria) (*domain.Dataset, error) {
	key := fmt.Sprintf("%+v", criteria)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SharedFetchTimeout)
		defer cancel()

		s.mu.Lock()
		defer s.mu.Unlock()
		return s.src.Fetch(fetchCtx, criteria)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Dataset), nil
	}
}
