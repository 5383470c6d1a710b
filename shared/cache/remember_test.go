package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"
	"villa/shared/cache"
	"villa/shared/cache/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type listing struct {
	Titles []string
}

func TestRemember(t *testing.T) {
	t.Run("hit skips the loader", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := mocks.NewMockRedisCache(ctrl)

		c.EXPECT().Get(gomock.Any(), "gallery:gets", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				value.(*listing).Titles = []string{"pool"}

				return nil
			})

		got, err := cache.Remember(context.Background(), c, "gallery:gets", 60, func() (listing, error) {
			t.Fatal("loader must not run on a hit")

			return listing{}, nil
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"pool"}, got.Titles)
	})

	t.Run("miss loads and writes back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := mocks.NewMockRedisCache(ctrl)
		saved := make(chan any, 1)

		c.EXPECT().Get(gomock.Any(), "gallery:gets", gomock.Any()).Return(cache.Nil)
		c.EXPECT().Save(gomock.Any(), "gallery:gets", gomock.Any(), 60).
			DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
				saved <- value

				return nil
			})

		got, err := cache.Remember(context.Background(), c, "gallery:gets", 60, func() (listing, error) {
			return listing{Titles: []string{"garden"}}, nil
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"garden"}, got.Titles)

		select {
		case value := <-saved:
			assert.Equal(t, got, value)
		case <-time.After(time.Second):
			t.Fatal("value was not written back")
		}
	})

	t.Run("loader error is returned and not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := mocks.NewMockRedisCache(ctrl)

		c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		_, err := cache.Remember(context.Background(), c, "faq:gets", 60, func() (listing, error) {
			return listing{}, errors.New("db down")
		})

		assert.EqualError(t, err, "db down")
	})
}
