package items

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/domain/items/mock"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/embark-app/embark/internal/gateways/database/repositories"
	"github.com/embark-app/embark/internal/locks"
	"github.com/embark-app/embark/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	db      *bun.DB
	service *Service
	users   *repositories.UserRepository
	items   *repositories.ItemRepository
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	userLocks, err := locks.NewKeyed(64)
	require.NoError(t, err)

	users := repositories.NewUserRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	return &fixture{
		db:      db,
		service: NewService(itemRepo, users, userLocks, testutil.NewClock(testutil.DefaultStart), opts...),
		users:   users,
		items:   itemRepo,
	}
}

func (f *fixture) richUser(t *testing.T, name string, glory int64) *models.User {
	t.Helper()
	user := testutil.CreateUser(t, f.db, name)
	_, err := f.users.IncrementStats(context.Background(), user.ID, glory, 0, glory, testutil.DefaultStart)
	require.NoError(t, err)
	return user
}

func TestService_Award(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "tam")
	item := testutil.CreateItem(t, f.db, "Sword", 1)

	ui, err := f.service.Award(ctx, user.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, ui)
	assert.Equal(t, item.ID, ui.ItemID)
	assert.Equal(t, "Sword", ui.Item.Name)

	again, err := f.service.Award(ctx, user.ID, item.ID)
	require.NoError(t, err)
	assert.Nil(t, again)

	count, err := f.items.CountUserItems(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = f.service.Award(ctx, user.ID, uuid.New())
	assert.True(t, apperr.IsNotFoundEntity(err, apperr.EntityItem))

	_, err = f.service.Award(ctx, uuid.New(), item.ID)
	assert.True(t, apperr.IsNotFoundEntity(err, apperr.EntityUser))
}

func TestService_AwardRandomFromTier(t *testing.T) {
	ctx := context.Background()

	t.Run("prefers unowned items", func(t *testing.T) {
		f := newFixture(t, WithPicker(func(n int) int { return 0 }))
		user := testutil.CreateUser(t, f.db, "uma")
		a := testutil.CreateItem(t, f.db, "Alpha", 2)
		b := testutil.CreateItem(t, f.db, "Beta", 2)
		testutil.CreateItem(t, f.db, "Other tier", 3)
		testutil.GiveItem(t, f.db, user.ID, a.ID, testutil.DefaultStart)

		ui, err := f.service.AwardRandomFromTier(ctx, user.ID, 2)
		require.NoError(t, err)
		require.NotNil(t, ui)
		assert.Equal(t, b.ID, ui.ItemID)
	})

	t.Run("all owned yields nil", func(t *testing.T) {
		f := newFixture(t)
		user := testutil.CreateUser(t, f.db, "vic")
		a := testutil.CreateItem(t, f.db, "Alpha", 2)
		testutil.GiveItem(t, f.db, user.ID, a.ID, testutil.DefaultStart)

		ui, err := f.service.AwardRandomFromTier(ctx, user.ID, 2)
		require.NoError(t, err)
		assert.Nil(t, ui)
	})

	t.Run("empty tier yields nil", func(t *testing.T) {
		f := newFixture(t)
		user := testutil.CreateUser(t, f.db, "wes")

		ui, err := f.service.AwardRandomFromTier(ctx, user.ID, 6)
		require.NoError(t, err)
		assert.Nil(t, ui)
	})
}

func TestService_Purchase(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		balance     int64
		alreadyOwns bool
		wantKind    apperr.Kind
		wantBalance int64
	}{
		{name: "success", balance: 600, wantBalance: 100},
		{name: "exact balance", balance: 500, wantBalance: 0},
		{name: "insufficient funds", balance: 499, wantKind: apperr.KindInsufficientFunds, wantBalance: 499},
		{name: "already owned", balance: 600, alreadyOwns: true, wantKind: apperr.KindAlreadyOwned, wantBalance: 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			user := f.richUser(t, "xan", tt.balance)
			item := testutil.CreateItem(t, f.db, "Lantern", 3)
			if tt.alreadyOwns {
				testutil.GiveItem(t, f.db, user.ID, item.ID, testutil.DefaultStart)
			}

			result, err := f.service.Purchase(ctx, user.ID, item.ID)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(500), result.Price)
				assert.Equal(t, tt.wantBalance, result.NewGloryBalance)
				assert.Equal(t, item.ID, result.UserItem.ItemID)
			}

			stored, err := f.users.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, stored.TotalGlory)
			assert.Equal(t, tt.balance, stored.LifetimeGloryGained, "spending never changes lifetime glory")

			owns, err := f.items.HasItem(ctx, user.ID, item.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.alreadyOwns || tt.wantKind == "", owns)
		})
	}
}

func TestService_PurchaseUnknownItem(t *testing.T) {
	f := newFixture(t)
	user := f.richUser(t, "yara", 1000)

	_, err := f.service.Purchase(context.Background(), user.ID, uuid.New())
	assert.True(t, apperr.IsNotFoundEntity(err, apperr.EntityItem))
}

func TestService_PurchaseConcurrentSingleBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.richUser(t, "zed", 500)
	first := testutil.CreateItem(t, f.db, "First", 3)
	second := testutil.CreateItem(t, f.db, "Second", 3)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for _, item := range []*models.Item{first, second} {
		wg.Add(1)
		go func(itemID uuid.UUID) {
			defer wg.Done()
			_, err := f.service.Purchase(ctx, user.ID, itemID)
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.True(t, errors.Is(err, apperr.ErrInsufficientFunds), "got %v", err)
		}(item.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	stored, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.TotalGlory)
}

func TestService_PurchaseCollectionCheck(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	t.Run("reports unlocked achievement", func(t *testing.T) {
		checker := mock.NewMockCollectionChecker(ctrl)
		f := newFixture(t, WithCollectionChecker(checker))
		user := f.richUser(t, "abe", 1000)
		item := testutil.CreateItem(t, f.db, "Cloak", 1)
		collector := &models.Achievement{ID: uuid.New(), Title: "Collector", Type: models.AchievementCollection}

		checker.EXPECT().CheckCollection(gomock.Any(), user.ID).Return(collector, nil)

		result, err := f.service.Purchase(ctx, user.ID, item.ID)
		require.NoError(t, err)
		assert.Equal(t, collector, result.UnlockedAchievement)
		assert.Empty(t, result.Warnings)
	})

	t.Run("failure is a warning", func(t *testing.T) {
		checker := mock.NewMockCollectionChecker(ctrl)
		f := newFixture(t, WithCollectionChecker(checker))
		user := f.richUser(t, "bea", 1000)
		item := testutil.CreateItem(t, f.db, "Cloak", 1)

		checker.EXPECT().CheckCollection(gomock.Any(), user.ID).Return(nil, errors.New("store down"))

		result, err := f.service.Purchase(ctx, user.ID, item.ID)
		require.NoError(t, err)
		assert.Nil(t, result.UnlockedAchievement)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, int64(900), result.NewGloryBalance)
	})
}

func TestService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.service.Create(ctx, CreateInput{Name: "Aegis", RarityTier: 4, RarityStars: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), item.Price)

	crown, err := f.service.Create(ctx, CreateInput{Name: "Crown", RarityTier: 6, RarityStars: 6})
	require.NoError(t, err)
	assert.Equal(t, 6, crown.RarityStars)

	plain, err := f.service.Create(ctx, CreateInput{Name: "Pebble", RarityTier: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, plain.RarityStars)

	_, err = f.service.Create(ctx, CreateInput{Name: "Overcharged", RarityTier: 6, RarityStars: 7})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = f.service.Create(ctx, CreateInput{Name: "Bad", RarityTier: 7})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = f.service.Create(ctx, CreateInput{Name: " ", RarityTier: 1})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = f.service.List(ctx, 9, 0, 0)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestService_UploadImage(t *testing.T) {
	ctx := context.Background()
	store := mock.NewMockImageStore(gomock.NewController(t))
	f := newFixture(t, WithImageStore(store))
	item := testutil.CreateItem(t, f.db, "Crown", 6)
	data := []byte{0x89, 'P', 'N', 'G'}

	store.EXPECT().
		UploadItemImage(gomock.Any(), item.ID, "image/png", data).
		Return("https://embark.cdn/items/crown.png", nil)

	updated, err := f.service.UploadImage(ctx, item.ID, "image/png", data)
	require.NoError(t, err)
	assert.Equal(t, "https://embark.cdn/items/crown.png", updated.ImageURL)

	_, err = f.service.UploadImage(ctx, item.ID, "text/plain", data)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	noStore := newFixture(t)
	_, err = noStore.service.UploadImage(ctx, item.ID, "image/png", data)
	assert.ErrorIs(t, err, ErrImagesDisabled)
}
