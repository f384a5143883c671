package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite provides a test suite for end-to-end tests
type E2ETestSuite struct {
	suite.Suite
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	expect  playwright.PlaywrightAssertions
}

// SetupSuite runs once before all tests
func (suite *E2ETestSuite) SetupSuite() {
	pw, err := playwright.Run()
	require.NoError(suite.T(), err, "could not launch playwright")
	suite.pw = pw

	browser, err := pw.Chromium.Launch()
	require.NoError(suite.T(), err, "could not launch chromium")
	suite.browser = browser

	suite.expect = playwright.NewPlaywrightAssertions()
}

// TearDownSuite runs once after all tests
func (suite *E2ETestSuite) TearDownSuite() {
	if suite.browser != nil {
		suite.browser.Close()
	}
	if suite.pw != nil {
		suite.pw.Stop()
	}
}

// SetupTest gives every test a fresh browser context, so no session leaks
// between tests.
func (suite *E2ETestSuite) SetupTest() {
	page, err := suite.browser.NewPage()
	require.NoError(suite.T(), err, "could not create page")
	suite.page = page

	_, err = suite.page.Goto(appURL)
	require.NoError(suite.T(), err, "could not navigate to app")
}

// TearDownTest runs after each test
func (suite *E2ETestSuite) TearDownTest() {
	if suite.page != nil {
		suite.page.Close()
	}
}

func (suite *E2ETestSuite) fill(selector, value string) {
	err := suite.page.Locator(selector).Fill(value)
	require.NoError(suite.T(), err, "failed to fill %s", selector)
}

func (suite *E2ETestSuite) click(selector string) {
	err := suite.page.Locator(selector).Click()
	require.NoError(suite.T(), err, "failed to click %s", selector)
}

func (suite *E2ETestSuite) expectFlash(text string) {
	err := suite.expect.Locator(suite.page.Locator(".flash").Filter(playwright.LocatorFilterOptions{
		HasText: text,
	})).ToBeVisible()
	require.NoError(suite.T(), err, "flash %q not shown", text)
}

func (suite *E2ETestSuite) login(email, password string) {
	// The gate sends anonymous visitors to the login form
	err := suite.expect.Locator(suite.page.Locator(".login-form")).ToBeVisible()
	require.NoError(suite.T(), err, "login form not visible")

	suite.fill("input[name=email]", email)
	suite.fill("input[name=password]", password)
	suite.click(".login-btn")

	err = suite.expect.Locator(suite.page.Locator("#add-form")).ToBeVisible()
	require.NoError(suite.T(), err, "did not reach the expense list after login")
	suite.expectFlash("Logged in successfully")
}

func (suite *E2ETestSuite) addExpense(description, amount, category, date string) {
	suite.fill("#add-form input[name=description]", description)
	suite.fill("#add-form input[name=amount]", amount)
	_, err := suite.page.Locator("#add-form select[name=category]").SelectOption(playwright.SelectOptionValues{
		Values: &[]string{category},
	})
	require.NoError(suite.T(), err, "failed to select category")
	suite.fill("#add-form input[name=date]", date)
	suite.click(".add-btn")
	suite.expectFlash("Expense added")
}

func (suite *E2ETestSuite) TestCompleteUserFlow() {
	suite.login(adminEmail, adminPassword)

	suite.addExpense("Lunch Test", "12.50", "Food", "2024-01-01")
	suite.addExpense("Train Test", "5.50", "Transport", "2024-01-02")

	// Newest first
	items := suite.page.Locator(".expense-item")
	err := suite.expect.Locator(items).ToHaveCount(2)
	require.NoError(suite.T(), err, "expense item count mismatch")
	err = suite.expect.Locator(items.First().Locator(".expense-description")).ToHaveText("Train Test")
	require.NoError(suite.T(), err, "list is not newest first")
	err = suite.expect.Locator(suite.page.Locator(".summary .total")).ToHaveText("18.00")
	require.NoError(suite.T(), err, "total mismatch")

	// Filter by category
	_, err = suite.page.Locator("#filter-form select[name=category]").SelectOption(playwright.SelectOptionValues{
		Values: &[]string{"Food"},
	})
	require.NoError(suite.T(), err, "failed to select filter category")
	suite.click(".filter-btn")
	err = suite.expect.Locator(items).ToHaveCount(1)
	require.NoError(suite.T(), err, "category filter not applied")
	err = suite.expect.Locator(items.First().Locator(".expense-amount")).ToContainText("12.50")
	require.NoError(suite.T(), err, "amount mismatch")

	// Delete the remaining row
	suite.click(".expense-item .delete-btn")
	suite.expectFlash("Expense deleted")

	_, err = suite.page.Goto(appURL + "/")
	require.NoError(suite.T(), err)
	err = suite.expect.Locator(items).ToHaveCount(1)
	require.NoError(suite.T(), err, "delete did not remove exactly one expense")

	// Logout returns to the login page
	suite.click(".logout")
	suite.expectFlash("Logged out")
	err = suite.expect.Locator(suite.page.Locator(".login-form")).ToBeVisible()
	require.NoError(suite.T(), err, "login form not visible after logout")
}

func (suite *E2ETestSuite) TestRegisterAndLogin() {
	_, err := suite.page.Goto(appURL + "/register")
	require.NoError(suite.T(), err)

	suite.fill("input[name=email]", "newuser@example.com")
	suite.fill("input[name=password]", "pass-one")
	suite.fill("input[name=password1]", "pass-two")
	suite.click(".register-btn")
	suite.expectFlash("Passwords do not match")

	suite.fill("input[name=email]", "newuser@example.com")
	suite.fill("input[name=password]", "pass-one")
	suite.fill("input[name=password1]", "pass-one")
	suite.click(".register-btn")
	suite.expectFlash("Account created successfully")

	suite.login("newuser@example.com", "pass-one")
}

func (suite *E2ETestSuite) TestInvalidLogin() {
	suite.fill("input[name=email]", adminEmail)
	suite.fill("input[name=password]", "wrong")
	suite.click(".login-btn")
	suite.expectFlash("Invalid email or password")
}

// TestE2ESuite runs the e2e test suite
func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
