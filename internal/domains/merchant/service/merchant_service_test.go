package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"merchant-directory-backend/internal/domains/merchant/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listFakeRepository struct {
	fakeRepository

	items    []model.MerchantListItem
	listErr  error
	lastPage int
	lastSize int
}

func (r *listFakeRepository) ListActive(_ context.Context, page, pageSize int) ([]model.MerchantListItem, error) {
	r.lastPage = page
	r.lastSize = pageSize
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.items, nil
}

func makeListItems(n int) []model.MerchantListItem {
	items := make([]model.MerchantListItem, n)
	for i := range items {
		items[i] = model.MerchantListItem{
			Slug:   fmt.Sprintf("merchant-%d", i),
			Name:   fmt.Sprintf("Merchant %d", i),
			Active: true,
		}
	}
	return items
}

func TestListActive_FullPageSetsNextPage(t *testing.T) {
	repo := &listFakeRepository{items: makeListItems(DirectoryPageSize)}
	svc := NewMerchantService(repo)

	resp, err := svc.ListActive(context.Background(), 2)
	require.NoError(t, err)

	assert.Len(t, resp.Merchants, DirectoryPageSize)
	require.NotNil(t, resp.NextPage)
	assert.Equal(t, 3, *resp.NextPage)
	assert.Equal(t, 2, repo.lastPage)
	assert.Equal(t, DirectoryPageSize, repo.lastSize)
}

func TestListActive_ShortPageOmitsNextPage(t *testing.T) {
	repo := &listFakeRepository{items: makeListItems(5)}
	svc := NewMerchantService(repo)

	resp, err := svc.ListActive(context.Background(), 0)
	require.NoError(t, err)

	assert.Len(t, resp.Merchants, 5)
	assert.Nil(t, resp.NextPage)
}

func TestListActive_NegativePageClampedToZero(t *testing.T) {
	repo := &listFakeRepository{}
	svc := NewMerchantService(repo)

	_, err := svc.ListActive(context.Background(), -3)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.lastPage)
}

func TestListActive_RepositoryErrorPropagates(t *testing.T) {
	repo := &listFakeRepository{listErr: errors.New("connection refused")}
	svc := NewMerchantService(repo)

	resp, err := svc.ListActive(context.Background(), 0)
	require.Error(t, err)
	assert.Nil(t, resp)
}
