package models_test

import (
	"github.com/cheqify/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSettingsDefaults() {
	t := suite.T()

	settings, err := models.LoadSettings(models.DB)
	require.Nil(t, err)

	assert.Equal(t, "dark", settings.Theme)
	assert.Equal(t, "DOP", settings.Currency)
	assert.Equal(t, "02/01/2006", settings.DateFormat)
	assert.Equal(t, 10, settings.PageSize)
}

// LoadSettings must always return the same row.
func (suite *TestSuiteStandard) TestSettingsSingleRow() {
	t := suite.T()

	first, err := models.LoadSettings(models.DB)
	require.Nil(t, err)

	second, err := models.LoadSettings(models.DB)
	require.Nil(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.Nil(t, models.DB.Model(&models.Settings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func (suite *TestSuiteStandard) TestSettingsCurrencyInvalid() {
	settings, err := models.LoadSettings(models.DB)
	require.Nil(suite.T(), err)

	settings.Currency = "NOPE"
	err = models.DB.Save(&settings).Error
	assert.ErrorIs(suite.T(), err, models.ErrCurrencyInvalid)
}

// Partial updates carry the new values in the statement destination and
// must be validated there, the receiver still holds the stored row.
func (suite *TestSuiteStandard) TestSettingsPartialUpdateInvalid() {
	t := suite.T()

	settings, err := models.LoadSettings(models.DB)
	require.Nil(t, err)

	err = models.DB.Model(&settings).Select("", "Currency").Updates(models.Settings{Currency: "NOPE"}).Error
	assert.ErrorIs(t, err, models.ErrCurrencyInvalid)

	err = models.DB.Model(&settings).Select("", "PageSize").Updates(models.Settings{PageSize: -1}).Error
	assert.ErrorIs(t, err, models.ErrPageSizeInvalid)

	// Nothing may have been persisted
	reloaded, err := models.LoadSettings(models.DB)
	require.Nil(t, err)
	assert.Equal(t, "DOP", reloaded.Currency)
	assert.Equal(t, 10, reloaded.PageSize)
}

func (suite *TestSuiteStandard) TestSettingsPageSizeInvalid() {
	settings, err := models.LoadSettings(models.DB)
	require.Nil(suite.T(), err)

	settings.PageSize = -5
	err = models.DB.Save(&settings).Error
	assert.ErrorIs(suite.T(), err, models.ErrPageSizeInvalid)
}
