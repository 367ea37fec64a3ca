package transferservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/currencypkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/randompkg"
)

func randomAccount(id int32, balance string) domain.Account {
	return domain.Account{
		ID:        id,
		Owner:     randompkg.Owner(),
		Balance:   balance,
		Currency:  currencypkg.RUB,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func TestTransfer(t *testing.T) {
	testAccount1 := randomAccount(1, "1000")
	testAccount2 := randomAccount(2, "1000")
	testAmount := "100"

	testTxResult := domain.TransferTxResult{
		Transfer: domain.Transfer{
			FromAccountID: testAccount1.ID,
			ToAccountID:   testAccount2.ID,
			Amount:        testAmount,
		},
		FromAccount: testAccount1,
		ToAccount:   testAccount2,
	}

	type input struct {
		fromUsername string
		arg          domain.CreateTransferParams
	}

	testCases := []struct {
		name          string
		input         input
		buildStubs    func(repo *MockRepo, accounts *MockAccountGetter)
		checkResponse func(res domain.TransferTxResult, err error)
	}{
		{
			name: "InvalidAmount",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        "!@#$",
				},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name: "NegativeAmount",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        "-100",
				},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrNonPositiveAmount.Error())
			},
		},
		{
			name: "TooManyDecimalPlaces",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        "10.001",
				},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAmountPrecision.Error())
			},
		},
		{
			name: "SameAccount",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount1.ID,
					Amount:        testAmount,
				},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrSameAccountTransfer.Error())
			},
		},
		{
			name: "FromAccountLookupError",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        testAmount,
				},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount1.ID)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
		{
			name: "ForeignFromAccount",
			input: input{
				fromUsername: testAccount2.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        testAmount,
				},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount1.ID)).
					Times(1).
					Return(testAccount1, nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountOwnerMismatch.Error())
			},
		},
		{
			name: "ToAccountNotFound",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        testAmount,
				},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)

				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount1.ID)).
					Times(1).
					Return(testAccount1, nil)

				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount2.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name: "OK",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        testAmount,
				},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount1.ID)).
					Times(1).
					Return(testAccount1, nil)

				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount2.ID)).
					Times(1).
					Return(testAccount2, nil)

				repo.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(domain.CreateTransferParams{
						FromAccountID: testAccount1.ID,
						ToAccountID:   testAccount2.ID,
						Amount:        testAmount,
					})).
					Times(1).
					Return(testTxResult, nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testTxResult, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accounts := NewMockAccountGetter(ctrl)
			service := New(repo, accounts)

			tc.buildStubs(repo, accounts)

			res, err := service.Transfer(context.Background(), tc.input.fromUsername, tc.input.arg)
			tc.checkResponse(res, err)
		})
	}
}

func TestListTransfers(t *testing.T) {
	testAccount := randomAccount(1, "1000")
	testTransfers := []domain.Transfer{{ID: 1, FromAccountID: testAccount.ID, Amount: "50.00"}}

	t.Run("Outgoing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := NewMockRepo(ctrl)
		accounts := NewMockAccountGetter(ctrl)
		service := New(repo, accounts)

		accounts.EXPECT().
			GetByOwner(gomock.Any(), gomock.Eq(testAccount.Owner)).
			Times(1).
			Return(testAccount, nil)

		repo.EXPECT().
			ListBySender(gomock.Any(), gomock.Eq(testAccount.ID), gomock.Eq("amount"), gomock.Eq(int32(10)), gomock.Eq(int32(0))).
			Times(1).
			Return(testTransfers, nil)

		got, err := service.List(context.Background(), testAccount.Owner, "amount", 10, 1)
		require.NoError(t, err)
		require.Equal(t, testTransfers, got)
	})

	t.Run("Incoming", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := NewMockRepo(ctrl)
		accounts := NewMockAccountGetter(ctrl)
		service := New(repo, accounts)

		accounts.EXPECT().
			GetByOwner(gomock.Any(), gomock.Eq(testAccount.Owner)).
			Times(1).
			Return(testAccount, nil)

		repo.EXPECT().
			ListByRecipient(gomock.Any(), gomock.Eq(testAccount.ID), gomock.Eq(""), gomock.Eq(int32(20)), gomock.Eq(int32(0))).
			Times(1).
			Return([]domain.Transfer{}, nil)

		got, err := service.ListToMyAccount(context.Background(), testAccount.Owner, "", 20, 1)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("NoAccount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := NewMockRepo(ctrl)
		accounts := NewMockAccountGetter(ctrl)
		service := New(repo, accounts)

		accounts.EXPECT().
			GetByOwner(gomock.Any(), gomock.Eq(testAccount.Owner)).
			Times(1).
			Return(domain.Account{}, domain.ErrAccountNotFound)

		_, err := service.List(context.Background(), testAccount.Owner, "", 20, 1)
		require.EqualError(t, err, domain.ErrAccountNotFound.Error())
	})
}
