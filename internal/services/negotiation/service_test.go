package negotiation

import (
	"context"
	"testing"

	domain "handshake/internal/errors"
	"handshake/internal/models"
	"handshake/internal/services/advisor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) FindByListingAndBuyer(ctx context.Context, listingID string, buyerID uint) (*models.Transaction, error) {
	args := m.Called(ctx, listingID, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) ListForUser(ctx context.Context, userID uint) ([]models.Transaction, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) AppendMessage(ctx context.Context, txID string, msg *models.Message) error {
	args := m.Called(ctx, txID, msg)
	return args.Error(0)
}

func (m *MockTransactionRepo) SetPrice(ctx context.Context, txID string, version uint, price int64) error {
	args := m.Called(ctx, txID, version, price)
	return args.Error(0)
}

func (m *MockTransactionRepo) SetMeetup(ctx context.Context, txID string, version uint, name, mapLink string) error {
	args := m.Called(ctx, txID, version, name, mapLink)
	return args.Error(0)
}

func (m *MockTransactionRepo) SetMeetupTime(ctx context.Context, txID string, version uint, meetupTime string) error {
	args := m.Called(ctx, txID, version, meetupTime)
	return args.Error(0)
}

func (m *MockTransactionRepo) MarkPaid(ctx context.Context, txID string, version uint, intentID string) error {
	args := m.Called(ctx, txID, version, intentID)
	return args.Error(0)
}

func (m *MockTransactionRepo) SetOTPToken(ctx context.Context, txID string, version uint, token string) error {
	args := m.Called(ctx, txID, version, token)
	return args.Error(0)
}

func (m *MockTransactionRepo) ConfirmOTP(ctx context.Context, txID string, version uint) error {
	args := m.Called(ctx, txID, version)
	return args.Error(0)
}

type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Create(ctx context.Context, listing *models.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingRepo) List(ctx context.Context, limit, offset int) ([]models.Listing, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockListingRepo) Update(ctx context.Context, listing *models.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) EvaluatePrice(ctx context.Context, req advisor.EvaluatePriceRequest) (*advisor.PriceEvaluation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*advisor.PriceEvaluation), args.Error(1)
}

type MockEvalCache struct {
	mock.Mock
}

func (m *MockEvalCache) CacheEvaluation(ctx context.Context, txID string, fmv int64) error {
	args := m.Called(ctx, txID, fmv)
	return args.Error(0)
}

func (m *MockEvalCache) GetEvaluation(ctx context.Context, txID string) (int64, bool, error) {
	args := m.Called(ctx, txID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func negotiationTx(texts ...string) *models.Transaction {
	tx := &models.Transaction{
		ID:        "tx-1",
		ListingID: "listing-1",
		BuyerID:   1,
		SellerID:  2,
		Version:   1,
	}
	for _, text := range texts {
		tx.Messages = append(tx.Messages, models.Message{Text: text})
	}
	return tx
}

func TestAcceptPrice(t *testing.T) {
	seller := models.Actor{ID: 2, Role: models.RoleSeller}
	buyer := models.Actor{ID: 1, Role: models.RoleBuyer}

	tests := []struct {
		name      string
		actor     models.Actor
		explicit  *int64
		setupMock func(*MockTransactionRepo, *MockListingRepo, *MockEvalCache)
		wantPrice int64
		wantErr   error
	}{
		{
			name:  "newest tagged message wins",
			actor: seller,
			setupMock: func(repo *MockTransactionRepo, listings *MockListingRepo, evals *MockEvalCache) {
				tx := negotiationTx("€300 ok?", "no, €250")
				repo.On("GetByID", mock.Anything, "tx-1").Return(tx, nil)
				repo.On("SetPrice", mock.Anything, "tx-1", uint(1), int64(250)).Return(nil)
			},
			wantPrice: 250,
		},
		{
			name:  "explicit price beats the log",
			actor: seller,
			explicit: func() *int64 {
				p := int64(275)
				return &p
			}(),
			setupMock: func(repo *MockTransactionRepo, listings *MockListingRepo, evals *MockEvalCache) {
				tx := negotiationTx("€300 ok?")
				repo.On("GetByID", mock.Anything, "tx-1").Return(tx, nil)
				repo.On("SetPrice", mock.Anything, "tx-1", uint(1), int64(275)).Return(nil)
			},
			wantPrice: 275,
		},
		{
			name:  "advisory value used when the log is silent",
			actor: seller,
			setupMock: func(repo *MockTransactionRepo, listings *MockListingRepo, evals *MockEvalCache) {
				tx := negotiationTx("is it available?")
				repo.On("GetByID", mock.Anything, "tx-1").Return(tx, nil)
				evals.On("GetEvaluation", mock.Anything, "tx-1").Return(int64(220), true, nil)
				repo.On("SetPrice", mock.Anything, "tx-1", uint(1), int64(220)).Return(nil)
			},
			wantPrice: 220,
		},
		{
			name:  "listing price is the last resort",
			actor: seller,
			setupMock: func(repo *MockTransactionRepo, listings *MockListingRepo, evals *MockEvalCache) {
				tx := negotiationTx()
				repo.On("GetByID", mock.Anything, "tx-1").Return(tx, nil)
				evals.On("GetEvaluation", mock.Anything, "tx-1").Return(int64(0), false, nil)
				listings.On("GetByID", mock.Anything, "listing-1").Return(&models.Listing{ID: "listing-1", Price: 199}, nil)
				repo.On("SetPrice", mock.Anything, "tx-1", uint(1), int64(199)).Return(nil)
			},
			wantPrice: 199,
		},
		{
			name:  "absurd tagged price is rejected before money math",
			actor: seller,
			setupMock: func(repo *MockTransactionRepo, listings *MockListingRepo, evals *MockEvalCache) {
				tx := negotiationTx("€922337203685477580")
				repo.On("GetByID", mock.Anything, "tx-1").Return(tx, nil)
			},
			wantErr: domain.ErrNoPriceAvailable,
		},
		{
			name:  "no source at all",
			actor: seller,
			setupMock: func(repo *MockTransactionRepo, listings *MockListingRepo, evals *MockEvalCache) {
				tx := negotiationTx()
				repo.On("GetByID", mock.Anything, "tx-1").Return(tx, nil)
				evals.On("GetEvaluation", mock.Anything, "tx-1").Return(int64(0), false, nil)
				listings.On("GetByID", mock.Anything, "listing-1").Return(&models.Listing{ID: "listing-1", Price: 0}, nil)
			},
			wantErr: domain.ErrNoPriceAvailable,
		},
		{
			name:  "buyer may not accept",
			actor: buyer,
			setupMock: func(repo *MockTransactionRepo, listings *MockListingRepo, evals *MockEvalCache) {
				repo.On("GetByID", mock.Anything, "tx-1").Return(negotiationTx(), nil)
			},
			wantErr: domain.ErrActionNotAllowed,
		},
		{
			name:  "second accept is rejected",
			actor: seller,
			setupMock: func(repo *MockTransactionRepo, listings *MockListingRepo, evals *MockEvalCache) {
				tx := negotiationTx()
				price := int64(250)
				tx.MeetupPrice = &price
				repo.On("GetByID", mock.Anything, "tx-1").Return(tx, nil)
			},
			wantErr: domain.ErrIllegalPhaseTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockTransactionRepo)
			listings := new(MockListingRepo)
			evals := new(MockEvalCache)
			tt.setupMock(repo, listings, evals)

			s := NewService(repo, listings, nil, evals)
			_, err := s.AcceptPrice(context.Background(), "tx-1", tt.actor, tt.explicit)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				repo.AssertCalled(t, "SetPrice", mock.Anything, "tx-1", uint(1), tt.wantPrice)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestProposePrice(t *testing.T) {
	buyer := models.Actor{ID: 1, Role: models.RoleBuyer}

	t.Run("plain message appends without evaluation", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		evaluator := new(MockEvaluator)
		listings := new(MockListingRepo)

		repo.On("GetByID", mock.Anything, "tx-1").Return(negotiationTx(), nil)
		repo.On("AppendMessage", mock.Anything, "tx-1", mock.Anything).Return(nil)

		s := NewService(repo, listings, evaluator, nil)
		msg, eval, err := s.ProposePrice(context.Background(), "tx-1", buyer, "still available?")

		assert.NoError(t, err)
		assert.NotNil(t, msg)
		assert.Nil(t, eval)
		evaluator.AssertNotCalled(t, "EvaluatePrice", mock.Anything, mock.Anything)
	})

	t.Run("tagged price triggers advisory evaluation", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		evaluator := new(MockEvaluator)
		listings := new(MockListingRepo)
		evals := new(MockEvalCache)

		repo.On("GetByID", mock.Anything, "tx-1").Return(negotiationTx(), nil)
		repo.On("AppendMessage", mock.Anything, "tx-1", mock.Anything).Return(nil)
		listings.On("GetByID", mock.Anything, "listing-1").Return(&models.Listing{ID: "listing-1", Description: "used bike"}, nil)
		evaluator.On("EvaluatePrice", mock.Anything, mock.Anything).Return(&advisor.PriceEvaluation{
			FairMarketValue: 280,
			GoodDeal:        true,
			Suggestion:      "Fair offer for this condition.",
		}, nil)
		evals.On("CacheEvaluation", mock.Anything, "tx-1", int64(280)).Return(nil)

		s := NewService(repo, listings, evaluator, evals)
		msg, eval, err := s.ProposePrice(context.Background(), "tx-1", buyer, "would you take €250?")

		assert.NoError(t, err)
		assert.NotNil(t, msg)
		assert.NotNil(t, eval)
		assert.Equal(t, int64(280), eval.FairMarketValue)
		evals.AssertExpectations(t)
	})

	t.Run("evaluation failure never blocks the message", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		evaluator := new(MockEvaluator)
		listings := new(MockListingRepo)

		repo.On("GetByID", mock.Anything, "tx-1").Return(negotiationTx(), nil)
		repo.On("AppendMessage", mock.Anything, "tx-1", mock.Anything).Return(nil)
		listings.On("GetByID", mock.Anything, "listing-1").Return(&models.Listing{ID: "listing-1", Description: "used bike"}, nil)
		evaluator.On("EvaluatePrice", mock.Anything, mock.Anything).Return(nil, domain.ErrNetworkUnavailable)

		s := NewService(repo, listings, evaluator, nil)
		msg, eval, err := s.ProposePrice(context.Background(), "tx-1", buyer, "€250?")

		assert.NoError(t, err)
		assert.NotNil(t, msg)
		assert.Nil(t, eval)
	})

	t.Run("stranger may not post", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		repo.On("GetByID", mock.Anything, "tx-1").Return(negotiationTx(), nil)

		s := NewService(repo, new(MockListingRepo), nil, nil)
		_, _, err := s.ProposePrice(context.Background(), "tx-1", models.Actor{ID: 99}, "hello")

		assert.ErrorIs(t, err, domain.ErrActionNotAllowed)
	})
}
