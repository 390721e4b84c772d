package attendance

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/repository/postgres/event"
	"workforce/backend/internal/service/export"
	"workforce/backend/internal/service/reconciler"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

const (
	statisticsCacheTTL = time.Minute
	defaultLateTime    = "09:15"
)

type Controller struct {
	reconciler Reconciler
	events     EventHistory
	office     OfficeInfo
	employees  EmployeeDirectory
	cache      Cache
}

func NewController(reconciler Reconciler, events EventHistory, office OfficeInfo, employees EmployeeDirectory, cache Cache) *Controller {
	return &Controller{reconciler: reconciler, events: events, office: office, employees: employees, cache: cache}
}

type RecordRequest struct {
	Mode           *string  `json:"mode" form:"mode"`
	Latitude       *float64 `json:"latitude" form:"latitude"`
	Longitude      *float64 `json:"longitude" form:"longitude"`
	Address        *string  `json:"address" form:"address"`
	Notes          *string  `json:"notes" form:"notes"`
	TimezoneOffset *float64 `json:"timezone_offset" form:"timezone_offset"`
}

func (uc Controller) CheckIn(c *web.Context) error {
	return uc.record(c, entity.EventCheckIn)
}

func (uc Controller) CheckOut(c *web.Context) error {
	return uc.record(c, entity.EventCheckOut)
}

func (uc Controller) record(c *web.Context, eventType entity.EventType) error {
	claims, ok := c.Ctx.Value(auth.Key).(auth.Claims)
	if !ok {
		return c.RespondError(web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized))
	}

	var request RecordRequest
	if err := c.BindFunc(&request, "Mode"); err != nil {
		return c.RespondError(err)
	}

	in := reconciler.RecordEventInput{
		UserID: claims.UserId,
		Type:   eventType,
		Mode:   entity.EventMode(*request.Mode),
		Notes:  request.Notes,
	}
	if request.TimezoneOffset != nil {
		in.TimezoneOffset = *request.TimezoneOffset
	}
	if request.Latitude != nil && request.Longitude != nil {
		location := entity.Location{Latitude: *request.Latitude, Longitude: *request.Longitude}
		if request.Address != nil {
			location.Address = *request.Address
		}
		in.Location = &location
	}

	// Office-mode events must originate inside the office geofence.
	if in.Mode == entity.ModeOffice && in.Location != nil {
		office, err := uc.office.Get(c.Ctx)
		if err != nil {
			return c.RespondError(err)
		}
		distance := CalculateDistance(in.Location.Latitude, in.Location.Longitude, office.Latitude, office.Longitude)
		if distance > office.Radius {
			return c.RespondError(web.NewRequestError(errors.New("distance from office is greater than office radius"), http.StatusBadRequest))
		}
	}

	response, err := uc.reconciler.RecordEvent(c.Ctx, in)
	if err != nil {
		return c.RespondError(mapRecordError(err))
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func mapRecordError(err error) error {
	switch {
	case errors.Is(err, reconciler.ErrMissingLocation),
		errors.Is(err, reconciler.ErrDuplicateCheckIn),
		errors.Is(err, reconciler.ErrDuplicateCheckOut),
		errors.Is(err, reconciler.ErrCheckOutWithoutCheckIn):
		return web.NewRequestError(err, http.StatusBadRequest)
	}
	return err
}

func (uc Controller) GetDailyStatus(c *web.Context) error {
	claims, ok := c.Ctx.Value(auth.Key).(auth.Claims)
	if !ok {
		return c.RespondError(web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized))
	}

	userID := claims.UserId
	if id, ok := c.GetQueryFunc(reflect.Int, "user_id").(*int); ok && id != nil {
		if claims.Role != auth.RoleAdmin && *id != claims.UserId {
			return c.RespondError(web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusUnauthorized))
		}
		userID = *id
	}

	tzOffset := 0.0
	if offset, ok := c.GetQueryFunc(reflect.Float64, "timezone_offset").(*float64); ok && offset != nil {
		tzOffset = *offset
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	day := uc.reconciler.Today(tzOffset)
	if dayStr := c.Query("date"); dayStr != "" {
		parsed, err := date.ParseDate(dayStr)
		if err != nil {
			return c.RespondError(web.NewRequestError(errors.New("invalid date format"), http.StatusBadRequest))
		}
		day = parsed
	}

	response, err := uc.reconciler.DailyStatus(c.Ctx, userID, day, tzOffset)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetSummary(c *web.Context) error {
	claims, ok := c.Ctx.Value(auth.Key).(auth.Claims)
	if !ok {
		return c.RespondError(web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized))
	}

	userID := claims.UserId
	if id, ok := c.GetQueryFunc(reflect.Int, "user_id").(*int); ok && id != nil {
		if claims.Role != auth.RoleAdmin && *id != claims.UserId {
			return c.RespondError(web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusUnauthorized))
		}
		userID = *id
	}

	tzOffset := 0.0
	if offset, ok := c.GetQueryFunc(reflect.Float64, "timezone_offset").(*float64); ok && offset != nil {
		tzOffset = *offset
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		return c.RespondError(web.NewRequestError(errors.New("start_date and end_date parameters are required"), http.StatusBadRequest))
	}

	start, err := date.ParseDate(startStr)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("invalid start_date format"), http.StatusBadRequest))
	}
	end, err := date.ParseDate(endStr)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("invalid end_date format"), http.StatusBadRequest))
	}

	response, err := uc.reconciler.SummarizeRange(c.Ctx, userID, start, end, tzOffset)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	var filter event.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if userID, ok := c.GetQueryFunc(reflect.Int, "user_id").(*int); ok {
		filter.UserID = userID
	}
	if eventType, ok := c.GetQueryFunc(reflect.String, "type").(*string); ok {
		filter.Type = eventType
	}
	if mode, ok := c.GetQueryFunc(reflect.String, "mode").(*string); ok {
		filter.Mode = mode
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	if fromStr := c.Query("date_from"); fromStr != "" {
		parsed, err := date.ParseDate(fromStr)
		if err != nil {
			return c.RespondError(web.NewRequestError(errors.New("invalid date_from format"), http.StatusBadRequest))
		}
		filter.DateFrom = &parsed
	}
	if toStr := c.Query("date_to"); toStr != "" {
		parsed, err := date.ParseDate(toStr)
		if err != nil {
			return c.RespondError(web.NewRequestError(errors.New("invalid date_to format"), http.StatusBadRequest))
		}
		filter.DateTo = &parsed
	}

	list, count, err := uc.events.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

type statistics struct {
	Date      string `json:"date"`
	CheckedIn int    `json:"checked_in_today"`
	OnTime    int    `json:"on_time"`
	Late      int    `json:"late"`
	Absent    int    `json:"absent"`
}

// GetStatistics returns the dashboard numbers, cached for a minute.
func (uc Controller) GetStatistics(c *web.Context) error {
	tzOffset := 0.0
	if offset, ok := c.GetQueryFunc(reflect.Float64, "timezone_offset").(*float64); ok && offset != nil {
		tzOffset = *offset
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	today := uc.reconciler.Today(tzOffset)
	cacheKey := fmt.Sprintf("dashboard:statistics:%s:%g", today.String(), tzOffset)

	if cached, err := uc.cache.Get(c.Ctx, cacheKey); err == nil && cached != "" {
		var stats statistics
		if err = json.Unmarshal([]byte(cached), &stats); err == nil {
			return uc.respondStatistics(c, stats)
		}
	}

	shift := time.Duration(tzOffset * float64(time.Hour))
	since := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).Add(-shift)
	until := since.Add(24 * time.Hour)

	lateCutoff := since.Add(parseClock(defaultLateTime))
	if office, err := uc.office.Get(c.Ctx); err == nil && office.LateTime != "" {
		lateCutoff = since.Add(parseClock(office.LateTime))
	}

	checkedIn, err := uc.events.CountToday(c.Ctx, since, until)
	if err != nil {
		return c.RespondError(err)
	}
	onTime, late, err := uc.events.Breakdown(c.Ctx, since, until, lateCutoff)
	if err != nil {
		return c.RespondError(err)
	}
	total, err := uc.employees.CountActiveEmployees(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	stats := statistics{
		Date:      today.String(),
		CheckedIn: checkedIn,
		OnTime:    onTime,
		Late:      late,
	}
	if absent := total - checkedIn; absent > 0 {
		stats.Absent = absent
	}

	// Serving uncached numbers beats failing the dashboard.
	if encoded, err := json.Marshal(stats); err == nil {
		_ = uc.cache.Set(c.Ctx, cacheKey, string(encoded), statisticsCacheTTL)
	}

	return uc.respondStatistics(c, stats)
}

// parseClock converts an "HH:MM" office time into an offset from midnight.
func parseClock(value string) time.Duration {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		parsed, _ = time.Parse("15:04", defaultLateTime)
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute
}

func (uc Controller) respondStatistics(c *web.Context, stats statistics) error {
	return c.Respond(map[string]interface{}{
		"data":   stats,
		"status": true,
	}, http.StatusOK)
}

// ExportExcel writes one employee's day-by-day attendance over a range into
// a workbook and returns its path.
func (uc Controller) ExportExcel(c *web.Context) error {
	claims, ok := c.Ctx.Value(auth.Key).(auth.Claims)
	if !ok {
		return c.RespondError(web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized))
	}

	userID := claims.UserId
	if id, ok := c.GetQueryFunc(reflect.Int, "user_id").(*int); ok && id != nil {
		if claims.Role != auth.RoleAdmin && *id != claims.UserId {
			return c.RespondError(web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusUnauthorized))
		}
		userID = *id
	}

	tzOffset := 0.0
	if offset, ok := c.GetQueryFunc(reflect.Float64, "timezone_offset").(*float64); ok && offset != nil {
		tzOffset = *offset
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		return c.RespondError(web.NewRequestError(errors.New("start_date and end_date parameters are required"), http.StatusBadRequest))
	}

	start, err := date.ParseDate(startStr)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("invalid start_date format"), http.StatusBadRequest))
	}
	end, err := date.ParseDate(endStr)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("invalid end_date format"), http.StatusBadRequest))
	}
	if end.Before(start.Time) {
		return c.RespondError(web.NewRequestError(errors.New("end_date before start_date"), http.StatusBadRequest))
	}

	one := 1
	history, _, err := uc.events.GetList(c.Ctx, event.Filter{UserID: &userID, DateFrom: &start, DateTo: &end, Limit: &one})
	if err != nil {
		return c.RespondError(err)
	}

	employeeID, fullName := "", ""
	if len(history) > 0 {
		if history[0].EmployeeID != nil {
			employeeID = *history[0].EmployeeID
		}
		if history[0].FullName != nil {
			fullName = *history[0].FullName
		}
	}

	var rows []export.AttendanceRow
	for cursor := start.Time; !cursor.After(end.Time); cursor = cursor.AddDate(0, 0, 1) {
		day := date.Date{Time: cursor}
		status, err := uc.reconciler.DailyStatus(c.Ctx, userID, day, tzOffset)
		if err != nil {
			return c.RespondError(err)
		}
		if status.Status == reconciler.StatusNotCheckedIn {
			continue
		}

		row := export.AttendanceRow{
			EmployeeID: employeeID,
			FullName:   fullName,
			Day:        day.String(),
			Hours:      status.HoursWorked,
			Mode:       string(entity.ModeOffice),
			Status:     string(status.Status),
		}
		if status.IsRemote {
			row.Mode = string(entity.ModeRemote)
		}
		if status.CheckInTime != nil {
			row.CheckIn = status.CheckInTime.Format("15:04")
		}
		if status.CheckOutTime != nil {
			row.CheckOut = status.CheckOutTime.Format("15:04")
		}
		rows = append(rows, row)
	}

	fileName, err := export.AttendanceToExcel(rows)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "exporting attendance"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"file": fileName,
		},
		"status": true,
	}, http.StatusOK)
}

// ExportMonthlyPDF renders one employee's monthly report.
func (uc Controller) ExportMonthlyPDF(c *web.Context) error {
	claims, ok := c.Ctx.Value(auth.Key).(auth.Claims)
	if !ok {
		return c.RespondError(web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized))
	}

	userID := claims.UserId
	if id, ok := c.GetQueryFunc(reflect.Int, "user_id").(*int); ok && id != nil {
		if claims.Role != auth.RoleAdmin && *id != claims.UserId {
			return c.RespondError(web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusUnauthorized))
		}
		userID = *id
	}

	tzOffset := 0.0
	if offset, ok := c.GetQueryFunc(reflect.Float64, "timezone_offset").(*float64); ok && offset != nil {
		tzOffset = *offset
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	monthStr := c.Query("month")
	if monthStr == "" {
		return c.RespondError(web.NewRequestError(errors.New("month parameter is required"), http.StatusBadRequest))
	}
	monthTime, err := time.Parse("2006-01", monthStr)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("invalid month format, use YYYY-MM"), http.StatusBadRequest))
	}

	start := date.Date{Time: monthTime}
	end := date.Date{Time: monthTime.AddDate(0, 1, -1)}

	summary, err := uc.reconciler.SummarizeRange(c.Ctx, userID, start, end, tzOffset)
	if err != nil {
		return c.RespondError(err)
	}

	company := ""
	if office, err := uc.office.Get(c.Ctx); err == nil {
		company = office.CompanyName
	}

	one := 1
	history, _, err := uc.events.GetList(c.Ctx, event.Filter{UserID: &userID, DateFrom: &start, DateTo: &end, Limit: &one})
	if err != nil {
		return c.RespondError(err)
	}

	report := export.MonthlySummary{
		Month:       monthStr,
		DaysWorked:  summary.DaysWorked,
		TotalHours:  summary.TotalHours,
		AverageHour: summary.AverageHoursPerDay,
	}
	if len(history) > 0 {
		if history[0].EmployeeID != nil {
			report.EmployeeID = *history[0].EmployeeID
		}
		if history[0].FullName != nil {
			report.FullName = *history[0].FullName
		}
	}

	fileName, err := export.MonthlyReportPDF(report, company)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "rendering monthly report"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"file": fileName,
		},
		"status": true,
	}, http.StatusOK)
}

func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	// Haversine formula to calculate the great-circle distance between two points
	R := 6371.0 // Earth's radius in kilometers
	φ1 := lat1 * math.Pi / 180.0
	φ2 := lat2 * math.Pi / 180.0
	Δφ := (lat2 - lat1) * math.Pi / 180.0
	Δλ := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) + math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	distance := R * c * 1000 // Distance in meters

	return distance
}
