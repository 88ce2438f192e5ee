//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/domain/user"
	"food-rescue/internal/handler/api"
	resdto "food-rescue/internal/handler/dto/response"
	"food-rescue/internal/pkg/errs"
	"food-rescue/internal/usecase/commands"
	"food-rescue/internal/usecase/queries"
	"food-rescue/tests/common/builder"
	"food-rescue/tests/common/httptest"
	"food-rescue/tests/common/testutil"
	commandsmock "food-rescue/tests/mock/commands"
	queriesmock "food-rescue/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PostHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockEngine  *commandsmock.MockLifecycleEngine
	mockQueries *queriesmock.MockPostQueries
	handler     *api.PostHandler
	userID      uuid.UUID
	role        user.Role
}

func (s *PostHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockEngine = commandsmock.NewMockLifecycleEngine(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockPostQueries(s.mockCtrl)
	s.handler = api.NewPostHandler(s.mockEngine, s.mockQueries)
	s.userID = uuid.New()
	s.role = user.RoleDonor

	// stands in for RequireAuth
	s.router.Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.userID)
			c.Set("user_role", s.role)
		}
		c.Next()
	})
	s.router.POST("/posts", s.handler.CreatePost)
	s.router.GET("/posts", s.handler.Feed)
	s.router.GET("/posts/mine", s.handler.Mine)
	s.router.GET("/posts/:id", s.handler.GetPost)
	s.router.POST("/posts/:id/cancel", s.handler.Cancel)
	s.router.POST("/posts/:id/reservation", s.handler.Reserve)
	s.router.DELETE("/posts/:id/reservation", s.handler.CancelReservation)
	s.router.POST("/posts/:id/acceptance", s.handler.Accept)
}

func (s *PostHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPostHandlerSuite(t *testing.T) {
	suite.Run(t, new(PostHandlerTestSuite))
}

type testCasePost struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *PostHandlerTestSuite) TestCreatePost() {
	url := "/posts"
	reqBody := builder.NewFoodPostBuilder().BuildDTO()

	s.Run("success: returns 201 with the new post", func() {
		s.mockEngine.EXPECT().CreatePost(gomock.Any(), gomock.Cond(func(x any) bool {
			d := x.(foodpost.Draft)
			return d.DonorID == s.userID && d.FoodName == reqBody.FoodName && d.DurationMinutes == 90
		})).DoAndReturn(func(_ any, d foodpost.Draft) (foodpost.FoodPost, error) {
			return foodpost.New(d, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
		})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var response resdto.PostResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(s.userID, response.DonorID)
		s.Equal("available", response.Status)
		s.Equal(int64(0), response.Version)
		s.Require().NotNil(response.Coordinates)
		s.Equal(reqBody.Location.Latitude, response.Coordinates.Latitude)
	})

	s.Run("duration defaults when omitted", func() {
		s.mockEngine.EXPECT().CreatePost(gomock.Any(), gomock.Cond(func(x any) bool {
			return x.(foodpost.Draft).DurationMinutes == 90
		})).DoAndReturn(func(_ any, d foodpost.Draft) (foodpost.FoodPost, error) {
			return foodpost.New(d, time.Now())
		})

		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("duration_minutes", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCasePost{
			{name: "missing food name", mutate: testutil.Field("food_name", nil), expectCode: http.StatusBadRequest},
			{name: "food name too long", mutate: testutil.Field("food_name", strings.Repeat("a", 201)), expectCode: http.StatusBadRequest},
			{name: "missing servings", mutate: testutil.Field("servings", nil), expectCode: http.StatusBadRequest},
			{name: "negative servings", mutate: testutil.Field("servings", -1), expectCode: http.StatusBadRequest},
			{name: "zero duration", mutate: testutil.Field("duration_minutes", 0), expectCode: http.StatusBadRequest},
			{name: "servings wider than int32", mutate: testutil.Field("servings", 3000000000), expectCode: http.StatusBadRequest},
			{name: "duration beyond one week", mutate: testutil.Field("duration_minutes", 200000000), expectCode: http.StatusBadRequest},
			{name: "latitude out of range", mutate: testutil.Field("location", map[string]any{"latitude": 95, "longitude": 0}), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 500 without an authenticated user", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *PostHandlerTestSuite) TestFeed() {
	view := queries.NewPostView(builder.NewFoodPostBuilder().MustBuildDomain())

	s.Run("success: passes near and paging through", func() {
		s.mockQueries.EXPECT().Feed(gomock.Any(), gomock.Cond(func(x any) bool {
			f := x.(queries.FeedFilter)
			return f.Near != nil && f.Near.Latitude == 35.6 && f.Near.Longitude == 139.7 &&
				f.RadiusKm == 2.5 && f.Limit == 10 && f.After != nil && f.After.After == "abc"
		})).Return(&queries.PostPage{Items: []*queries.PostView{view}, Next: &queries.Cursor{After: "next"}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/posts?near=35.6,139.7&radius_km=2.5&limit=10&after=abc", nil, "token")

		var response resdto.FeedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response.Items, 1)
		s.Equal(view.ID, response.Items[0].ID)
		s.Equal("next", response.NextCursor)
	})

	s.Run("radius defaults when only near is given", func() {
		s.mockQueries.EXPECT().Feed(gomock.Any(), gomock.Cond(func(x any) bool {
			return x.(queries.FeedFilter).RadiusKm == 5
		})).Return(&queries.PostPage{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/posts?near=35.6,139.7", nil, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on bad query", func() {
		for _, q := range []string{"near=abc", "near=100,0", "limit=500", "radius_km=-1"} {
			s.Run(q, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/posts?"+q, nil, "token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 400 on bad cursor", func() {
		s.mockQueries.EXPECT().Feed(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("bad"), queries.ErrInvalidCursor))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/posts?after=zzz", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

func (s *PostHandlerTestSuite) TestMine() {
	s.role = user.RoleRecipient
	view := queries.NewPostView(builder.NewFoodPostBuilder().MustBuildDomain())
	s.mockQueries.EXPECT().Mine(gomock.Any(), s.userID, user.RoleRecipient).Return([]*queries.PostView{view}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/posts/mine", nil, "token")

	var response []resdto.PostResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Require().Len(response, 1)
	s.Equal(view.ID, response[0].ID)
}

func (s *PostHandlerTestSuite) TestGetPost() {
	view := queries.NewPostView(builder.NewFoodPostBuilder().MustBuildDomain())
	view.Donor = &queries.DonorView{ID: view.DonorID, Name: "Corner Bakery"}

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/posts/"+view.ID.String(), nil, "token")

		var response resdto.PostResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.Donor)
		s.Equal("Corner Bakery", response.Donor.Name)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/posts/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid food post ID format")
	})

	s.Run("error: 404 when missing", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, errs.Wrap(foodpost.ErrNotFound, "post"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/posts/"+id.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Food post not found")
	})
}

func (s *PostHandlerTestSuite) TestReserve() {
	post := builder.NewFoodPostBuilder().MustBuildDomain()
	url := "/posts/" + post.ID().String() + "/reservation"

	s.Run("success: returns 201 with the hold", func() {
		reserved, err := post.Reserve(s.userID, post.CreatedAt(), 5*time.Minute)
		s.Require().NoError(err)
		reserved = reserved.WithVersion(1)

		s.mockEngine.EXPECT().TryReserve(gomock.Any(), post.ID(), s.userID).Return(&commands.Reservation{
			PostID:        post.ID(),
			RecipientID:   s.userID,
			ReservedUntil: *reserved.ReservedUntil(),
			Post:          reserved,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(s.userID, response.RecipientID)
		s.True(response.ReservedUntil.Equal(*reserved.ReservedUntil()))
		s.Equal("reserved", response.Post.Status)
		s.Equal(int64(1), response.Post.Version)
	})

	s.Run("error: maps lifecycle errors to proper statuses", func() {
		testCases := []struct {
			name           string
			engineError    error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "lost the race", engineError: errs.Mark(errors.New("reserve lost"), foodpost.ErrConflict), expectedStatus: http.StatusConflict, expectedMsg: "no longer available"},
			{name: "expired", engineError: foodpost.ErrExpired, expectedStatus: http.StatusConflict, expectedMsg: "expired"},
			{name: "own post", engineError: foodpost.ErrForbidden, expectedStatus: http.StatusForbidden, expectedMsg: "Not allowed"},
			{name: "missing", engineError: foodpost.ErrNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "not found"},
			{name: "internal server error", engineError: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockEngine.EXPECT().TryReserve(gomock.Any(), post.ID(), s.userID).Return(nil, tc.engineError)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *PostHandlerTestSuite) TestActorTransitions() {
	post := builder.NewFoodPostBuilder().MustBuildDomain()
	base := "/posts/" + post.ID().String()

	s.Run("accept", func() {
		s.mockEngine.EXPECT().ConfirmAccept(gomock.Any(), post.ID(), s.userID).Return(post, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/acceptance", nil, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("accept by someone else", func() {
		s.mockEngine.EXPECT().ConfirmAccept(gomock.Any(), post.ID(), s.userID).Return(foodpost.FoodPost{}, foodpost.ErrNotReserved)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/acceptance", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not reserved by you")
	})

	s.Run("release", func() {
		s.mockEngine.EXPECT().CancelReservation(gomock.Any(), post.ID(), s.userID).Return(post, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, base+"/reservation", nil, "token")

		var response resdto.PostResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("available", response.Status)
	})

	s.Run("cancel", func() {
		cancelled, err := post.Cancel(post.DonorID(), post.CreatedAt())
		s.Require().NoError(err)
		s.mockEngine.EXPECT().Cancel(gomock.Any(), post.ID(), s.userID).Return(cancelled, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/cancel", nil, "token")

		var response resdto.PostResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cancelled", response.Status)
	})

	s.Run("cancel by another donor", func() {
		s.mockEngine.EXPECT().Cancel(gomock.Any(), post.ID(), s.userID).Return(foodpost.FoodPost{}, foodpost.ErrForbidden)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/cancel", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}
