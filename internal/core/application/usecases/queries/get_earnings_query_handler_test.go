package queries_test

import (
	"testing"
	"time"

	"meatdelivery/internal/core/application/usecases/queries"
	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/model/order/ordertest"
	"meatdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type GetEarningsQueryHandlerTestSuite struct {
	suite.Suite
	partner access.Principal
	handler queries.GetEarningsQueryHandler
	lastMay time.Time
	lastJun time.Time
}

func (suite *GetEarningsQueryHandlerTestSuite) SetupTest() {
	db, repo := store(suite.T())
	suite.partner = principal(access.RoleDeliveryPartner)
	suite.handler = queries.NewGetEarningsQueryHandler(db)
	suite.lastMay = time.Date(2026, time.May, 31, 12, 0, 0, 0, time.UTC)
	suite.lastJun = time.Date(2026, time.June, 30, 12, 0, 0, 0, time.UTC)

	t := suite.T()
	save(t, repo,
		// 200 pays the 30 delivery fee.
		delivered(t, suite.partner.ID, suite.lastMay, "200"),
		// Above 500 the delivery is free.
		delivered(t, suite.partner.ID, suite.lastJun, "600"),
		delivered(t, suite.partner.ID, suite.lastJun.Add(time.Hour), "100"),
		ordertest.InStatus(t, kernel.NewUUID(), suite.partner.ID, order.InTransit),
		delivered(t, principal(access.RoleDeliveryPartner).ID, suite.lastJun, "100"),
	)
}

func (suite *GetEarningsQueryHandlerTestSuite) earnings(from, to *time.Time) queries.GetEarningsQueryResponse {
	query, err := queries.NewGetEarningsQuery(suite.partner, from, to)
	suite.Require().NoError(err)
	response, err := suite.handler.Handle(suite.T().Context(), query)
	suite.Require().NoError(err)
	return response
}

func (suite *GetEarningsQueryHandlerTestSuite) TestAllTime() {
	response := suite.earnings(nil, nil)

	suite.Equal(3, response.Stats.TotalDeliveries)
	suite.Equal("60", response.Stats.TotalEarnings.String())
	suite.Equal("20", response.Stats.AverageEarningsPerOrder.String())
	suite.Require().Len(response.Orders, 3)
	suite.True(response.Orders[0].CreatedAt.After(response.Orders[1].CreatedAt), "newest first")
	suite.NotNil(response.Orders[0].ActualDeliveryTime)
}

func (suite *GetEarningsQueryHandlerTestSuite) TestPeriod() {
	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 30, 23, 59, 59, 0, time.UTC)

	response := suite.earnings(&from, &to)

	suite.Equal(2, response.Stats.TotalDeliveries)
	suite.Equal("30", response.Stats.TotalEarnings.String())
	suite.Equal("15", response.Stats.AverageEarningsPerOrder.String())
}

func (suite *GetEarningsQueryHandlerTestSuite) TestHalfOpenPeriodIsIgnored() {
	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	suite.Equal(3, suite.earnings(&from, nil).Stats.TotalDeliveries)
}

func (suite *GetEarningsQueryHandlerTestSuite) TestNoDeliveries() {
	suite.partner = principal(access.RoleDeliveryPartner)

	response := suite.earnings(nil, nil)

	suite.Zero(response.Stats.TotalDeliveries)
	suite.True(response.Stats.TotalEarnings.IsZero())
	suite.True(response.Stats.AverageEarningsPerOrder.IsZero())
	suite.NotNil(response.Orders)
	suite.Empty(response.Orders)
}

func (suite *GetEarningsQueryHandlerTestSuite) TestOnlyPartners() {
	query, err := queries.NewGetEarningsQuery(principal(access.RoleCustomer), nil, nil)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(suite.T().Context(), query)

	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func TestGetEarningsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetEarningsQueryHandlerTestSuite))
}

func TestNewGetEarningsQuery_ReversedPeriod(t *testing.T) {
	from := time.Now()
	to := from.Add(-time.Hour)

	_, err := queries.NewGetEarningsQuery(principal(access.RoleDeliveryPartner), &from, &to)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, queries.GetEarningsQuery{}.Validate(), queries.ErrGetEarningsQueryIsNotConstructed)
}
