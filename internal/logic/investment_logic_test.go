package logic

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/config"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/model"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/vnpay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway() *vnpay.Client {
	return vnpay.NewClient(config.VnpayConfig{
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "https://example.com/api/v1/investments/vnpay-callback",
		TmnCode:    "2QXUI4J4",
		HashSecret: "RAOEXHYFYPOIJDOQRIQYMOABEPJQVJWX",
	})
}

func projectRows(id, founderId int64, status model.ProjectStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "founder_id", "title", "status", "target_amount", "current_amount", "investor_count", "days_left"}).
		AddRow(id, founderId, "Du an nang luong sach", string(status), int64(50000000), int64(0), 0, 45)
}

func TestCreateInvestment(t *testing.T) {
	baseInput := CreateInvestmentInput{
		InvestorId: 9,
		ProjectId:  5,
		Amount:     model.MinInvestmentAmount,
		Message:    "Ung ho du an",
		ClientIp:   "203.0.113.7",
	}

	t.Run("project not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		l := NewInvestmentLogic(db, testGateway(), nil)

		mock.ExpectQuery(`SELECT \* FROM "projects"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := l.CreateInvestment(baseInput)
		assert.ErrorIs(t, err, ErrProjectNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("project not open for investment", func(t *testing.T) {
		db, mock := newTestDB(t)
		l := NewInvestmentLogic(db, testGateway(), nil)

		mock.ExpectQuery(`SELECT \* FROM "projects"`).
			WillReturnRows(projectRows(5, 2, model.ProjectStatusPending))

		_, err := l.CreateInvestment(baseInput)
		assert.ErrorIs(t, err, ErrProjectNotOpen)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("self investment rejected without records", func(t *testing.T) {
		db, mock := newTestDB(t)
		l := NewInvestmentLogic(db, testGateway(), nil)

		// 创建者与投资人是同一个用户
		mock.ExpectQuery(`SELECT \* FROM "projects"`).
			WillReturnRows(projectRows(5, 9, model.ProjectStatusActive))

		_, err := l.CreateInvestment(baseInput)
		assert.ErrorIs(t, err, ErrSelfInvestment)
		// 没有任何INSERT被执行
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("amount one unit below minimum rejected", func(t *testing.T) {
		db, mock := newTestDB(t)
		l := NewInvestmentLogic(db, testGateway(), nil)

		mock.ExpectQuery(`SELECT \* FROM "projects"`).
			WillReturnRows(projectRows(5, 2, model.ProjectStatusActive))

		in := baseInput
		in.Amount = model.MinInvestmentAmount - 1
		_, err := l.CreateInvestment(in)
		assert.ErrorIs(t, err, ErrAmountTooLow)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("amount exactly minimum accepted", func(t *testing.T) {
		db, mock := newTestDB(t)
		l := NewInvestmentLogic(db, testGateway(), nil)

		mock.ExpectQuery(`SELECT \* FROM "projects"`).
			WillReturnRows(projectRows(5, 2, model.ProjectStatusActive))

		// 投资记录与资金流水在同一事务中写入
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "investments"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
		mock.ExpectQuery(`INSERT INTO "transactions"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(21)))
		mock.ExpectCommit()

		paymentURL, err := l.CreateInvestment(baseInput)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(paymentURL, "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?"))
		assert.Contains(t, paymentURL, "vnp_SecureHash=")
		assert.Contains(t, paymentURL, "vnp_TxnRef=INV")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetProjectInvestments(t *testing.T) {
	t.Run("only founder may list", func(t *testing.T) {
		db, mock := newTestDB(t)
		l := NewInvestmentLogic(db, testGateway(), nil)

		mock.ExpectQuery(`SELECT \* FROM "projects"`).
			WillReturnRows(projectRows(5, 2, model.ProjectStatusActive))

		_, err := l.GetProjectInvestments(5, 9)
		assert.ErrorIs(t, err, ErrNotProjectFounder)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("founder sees investments", func(t *testing.T) {
		db, mock := newTestDB(t)
		l := NewInvestmentLogic(db, testGateway(), nil)

		mock.ExpectQuery(`SELECT \* FROM "projects"`).
			WillReturnRows(projectRows(5, 2, model.ProjectStatusActive))
		mock.ExpectQuery(`SELECT \* FROM "investments"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "investor_id", "amount", "status"}).
				AddRow(int64(11), int64(5), int64(9), int64(200000), "success"))

		investments, err := l.GetProjectInvestments(5, 2)
		require.NoError(t, err)
		require.Len(t, investments, 1)
		assert.Equal(t, int64(200000), investments[0].Amount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewTransactionCode(t *testing.T) {
	// 交易码前缀固定，且并发生成不应碰撞
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code := newTransactionCode()
		assert.True(t, strings.HasPrefix(code, "INV"))
		assert.False(t, seen[code], "duplicate transaction code %s", code)
		seen[code] = true
	}
}
