// internal/services/catalog_service_test.go
package services

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/luxshop/backend/internal/models"
	"github.com/luxshop/backend/internal/utils"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	catalog *CatalogService
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.catalog = NewCatalogService(suite.db)

	coins := &models.Category{Name: "Coins", SortOrder: 2}
	gems := &models.Category{Name: "Gems", SortOrder: 1}
	require.NoError(suite.T(), suite.db.Create(coins).Error)
	require.NoError(suite.T(), suite.db.Create(gems).Error)

	products := []models.Product{
		{Name: "Gold Coin Pack", Description: "A pile of gold", Price: 100, Stock: 5, CategoryID: coins.ID},
		{Name: "Silver Coin Pack", Description: "Shiny silver", Price: 50, Stock: 5, CategoryID: coins.ID},
		{Name: "Ruby Bundle", Description: "Red GEMS for collectors", Price: 200, Stock: 1, CategoryID: gems.ID},
	}
	for i := range products {
		require.NoError(suite.T(), suite.db.Create(&products[i]).Error)
	}
}

func searchParams(search, category string) utils.PaginationParams {
	return utils.PaginationParams{
		Page:     1,
		Limit:    20,
		Sort:     "created_at",
		Order:    "desc",
		Search:   search,
		Category: category,
	}
}

func (suite *CatalogServiceTestSuite) TestSearchIsCaseInsensitive() {
	products, total, err := suite.catalog.SearchProducts(searchParams("GOLD", ""))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	require.Len(suite.T(), products, 1)
	assert.Equal(suite.T(), "Gold Coin Pack", products[0].Name)
}

func (suite *CatalogServiceTestSuite) TestSearchMatchesDescription() {
	products, total, err := suite.catalog.SearchProducts(searchParams("gems", ""))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	require.Len(suite.T(), products, 1)
	assert.Equal(suite.T(), "Ruby Bundle", products[0].Name)
}

func (suite *CatalogServiceTestSuite) TestCategoryFilterCombinesWithSearch() {
	var coins models.Category
	require.NoError(suite.T(), suite.db.Where("name = ?", "Coins").First(&coins).Error)

	products, total, err := suite.catalog.SearchProducts(searchParams("pack", strconv.FormatInt(coins.ID, 10)))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), total)
	assert.Len(suite.T(), products, 2)
}

func (suite *CatalogServiceTestSuite) TestCategoryAllMatchesEverything() {
	_, total, err := suite.catalog.SearchProducts(searchParams("", "all"))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), total)
}

func (suite *CatalogServiceTestSuite) TestSearchIsRepeatable() {
	first, firstTotal, err := suite.catalog.SearchProducts(searchParams("coin", ""))
	require.NoError(suite.T(), err)
	second, secondTotal, err := suite.catalog.SearchProducts(searchParams("coin", ""))
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), firstTotal, secondTotal)
	require.Equal(suite.T(), len(first), len(second))
	for i := range first {
		assert.Equal(suite.T(), first[i].ID, second[i].ID)
	}
}

func (suite *CatalogServiceTestSuite) TestListCategoriesSorted() {
	categories, err := suite.catalog.ListCategories()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), categories, 2)
	assert.Equal(suite.T(), "Gems", categories[0].Name)
	assert.Equal(suite.T(), "Coins", categories[1].Name)
}

func (suite *CatalogServiceTestSuite) TestGetProduct() {
	product, err := suite.catalog.GetProduct(1)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Gold Coin Pack", product.Name)

	_, err = suite.catalog.GetProduct(9999)
	assert.ErrorIs(suite.T(), err, ErrProductNotFound)
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}
