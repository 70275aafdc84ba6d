package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gr1d99/shopping-list-api-sub000/internal/domain"
	apperrors "github.com/gr1d99/shopping-list-api-sub000/pkg/errors"
	"github.com/gr1d99/shopping-list-api-sub000/pkg/pagination"
)

type itemFixture struct {
	svc   *ItemService
	lists *mockListRepository
	items *mockItemRepository
}

func newItemFixture(t *testing.T) *itemFixture {
	t.Helper()

	lists := new(mockListRepository)
	items := new(mockItemRepository)
	svc := NewItemService(lists, items, testLogger())
	return &itemFixture{svc: svc, lists: lists, items: items}
}

func (f *itemFixture) ownsList(listID, ownerID int64) {
	f.lists.On("GetByIDForOwner", mock.Anything, listID, ownerID).
		Return(&domain.ShoppingList{ID: listID, OwnerID: ownerID, Name: "Groceries"}, nil)
}

func (f *itemFixture) missingList(listID, ownerID int64) {
	f.lists.On("GetByIDForOwner", mock.Anything, listID, ownerID).
		Return(nil, apperrors.NotFound("shopping list does not exist"))
}

func TestItemService_Create_Success(t *testing.T) {
	f := newItemFixture(t)
	f.ownsList(5, 7)

	f.items.On("Create", mock.Anything, mock.MatchedBy(func(i *domain.ShoppingItem) bool {
		return i.Name == "Milk" && i.ListID == int64(5) && !i.Bought
	})).Return(nil)

	item, err := f.svc.Create(context.Background(), 7, 5, CreateItemInput{Name: "Milk", Price: 2.50, QuantityDescr: "2 litres"})
	require.NoError(t, err)

	assert.Equal(t, "Milk", item.Name)
	f.items.AssertExpectations(t)
}

func TestItemService_Create_ListNotOwned(t *testing.T) {
	f := newItemFixture(t)
	f.missingList(5, 99)

	_, err := f.svc.Create(context.Background(), 99, 5, CreateItemInput{Name: "Milk"})
	require.Error(t, err)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "shopping list does not exist")
	f.items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestItemService_Create_NegativePrice(t *testing.T) {
	f := newItemFixture(t)
	f.ownsList(5, 7)

	_, err := f.svc.Create(context.Background(), 7, 5, CreateItemInput{Name: "Milk", Price: -1})
	require.Error(t, err)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "price must not be negative")
}

func TestItemService_Create_DuplicateNameInList(t *testing.T) {
	f := newItemFixture(t)
	f.ownsList(5, 7)

	f.items.On("Create", mock.Anything, mock.Anything).
		Return(apperrors.AlreadyExists(`shopping item "Milk" already exists in this list`))

	_, err := f.svc.Create(context.Background(), 7, 5, CreateItemInput{Name: "Milk"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestItemService_List_BuildsPage(t *testing.T) {
	f := newItemFixture(t)
	f.ownsList(5, 7)

	stored := []*domain.ShoppingItem{{ID: 1, Name: "Milk", ListID: 5}}
	f.items.On("ListInList", mock.Anything, int64(5), 20, 0).Return(stored, 1, nil)

	page, err := f.svc.List(context.Background(), 7, 5, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 1, page.ItemsInPage)
	assert.Equal(t, 1, page.TotalCount)
}

func TestItemService_Get_ItemMissing(t *testing.T) {
	f := newItemFixture(t)
	f.ownsList(5, 7)

	f.items.On("GetByIDInList", mock.Anything, int64(5), int64(42)).
		Return(nil, apperrors.NotFound("shopping item does not exist"))

	_, err := f.svc.Get(context.Background(), 7, 5, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shopping item does not exist")
}

func TestItemService_Update_MarksBought(t *testing.T) {
	f := newItemFixture(t)
	f.ownsList(5, 7)

	existing := &domain.ShoppingItem{ID: 1, Name: "Milk", ListID: 5, Bought: false}
	f.items.On("GetByIDInList", mock.Anything, int64(5), int64(1)).Return(existing, nil)
	f.items.On("Update", mock.Anything, mock.MatchedBy(func(i *domain.ShoppingItem) bool {
		return i.Bought
	})).Return(nil)

	bought := true
	item, err := f.svc.Update(context.Background(), 7, 5, 1, UpdateItemInput{Bought: &bought})
	require.NoError(t, err)

	assert.True(t, item.Bought)
	f.items.AssertExpectations(t)
}

func TestItemService_Update_NoChange(t *testing.T) {
	f := newItemFixture(t)
	f.ownsList(5, 7)

	existing := &domain.ShoppingItem{ID: 1, Name: "Milk", ListID: 5, Bought: false}
	f.items.On("GetByIDInList", mock.Anything, int64(5), int64(1)).Return(existing, nil)

	notBought := false
	_, err := f.svc.Update(context.Background(), 7, 5, 1, UpdateItemInput{Bought: &notBought})
	require.Error(t, err)

	assert.ErrorIs(t, err, apperrors.ErrNoChange)
	assert.Contains(t, err.Error(), "shopping item not updated")
	f.items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestItemService_Update_NegativePrice(t *testing.T) {
	f := newItemFixture(t)
	f.ownsList(5, 7)

	existing := &domain.ShoppingItem{ID: 1, Name: "Milk", ListID: 5, Price: 2.50}
	f.items.On("GetByIDInList", mock.Anything, int64(5), int64(1)).Return(existing, nil)

	negative := -0.5
	_, err := f.svc.Update(context.Background(), 7, 5, 1, UpdateItemInput{Price: &negative})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestItemService_Delete_ListGuardFirst(t *testing.T) {
	f := newItemFixture(t)
	f.missingList(5, 99)

	err := f.svc.Delete(context.Background(), 99, 5, 1)
	require.Error(t, err)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	f.items.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestItemService_Delete_Success(t *testing.T) {
	f := newItemFixture(t)
	f.ownsList(5, 7)

	f.items.On("Delete", mock.Anything, int64(5), int64(1)).Return(nil)

	require.NoError(t, f.svc.Delete(context.Background(), 7, 5, 1))
	f.items.AssertExpectations(t)
}
