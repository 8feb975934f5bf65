package controller

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"

	"wedding-rsvp/core/config"
	"wedding-rsvp/core/constants"
	"wedding-rsvp/core/controller"
	"wedding-rsvp/core/errors"
	"wedding-rsvp/core/logger"
	"wedding-rsvp/modules/rsvp/dto"
	"wedding-rsvp/modules/rsvp/mapper"
	"wedding-rsvp/modules/rsvp/service"
	"wedding-rsvp/modules/rsvp/validator"

	"github.com/labstack/echo/v4"
)

type RSVPController struct {
	controller.BaseController
	service *service.RSVPService
}

func NewRSVPController(service *service.RSVPService) *RSVPController {
	return &RSVPController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// Submit handles the JSON entry point.
// @Summary Submit an RSVP
// @Description Validates and records a guest's RSVP, then emails a confirmation
// @Tags RSVP
// @Accept json
// @Produce json
// @Param payload body map[string]interface{} true "RSVP submission"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ValidationResponse
// @Router /rsvp [post]
func (c *RSVPController) Submit(ctx echo.Context) error {
	var body map[string]any
	if err := ctx.Bind(&body); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body", nil)
	}

	resp, fieldErrors, err := c.service.Submit(ctx.Request().Context(), mapper.FromJSON(body))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	if len(fieldErrors) > 0 {
		return c.ValidationFailed(ctx, "RSVP could not be submitted", toControllerErrors(fieldErrors))
	}

	return c.SuccessResponse(ctx, resp, "RSVP submitted, see you there!")
}

// ValidateEmail backs the live availability check on the form.
// @Summary Check email availability
// @Tags RSVP
// @Accept json
// @Produce json
// @Param payload body dto.CheckEmailRequest true "Email to check"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ValidationResponse
// @Router /validate-email [post]
func (c *RSVPController) ValidateEmail(ctx echo.Context) error {
	var req dto.CheckEmailRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body", nil)
	}

	fieldErrors, err := c.service.CheckEmailAvailability(ctx.Request().Context(), req.Email)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	if len(fieldErrors) > 0 {
		return c.ValidationFailed(ctx, "email is not available", toControllerErrors(fieldErrors))
	}

	return c.SuccessResponse(ctx, dto.CheckEmailResponse{Available: true}, "email is available")
}

// SubmitForm handles the non-JSON entry point. It shares the whole pipeline
// with Submit and differs only in the response: a redirect either to the
// thank-you view or back to the form.
func (c *RSVPController) SubmitForm(ctx echo.Context) error {
	if err := ctx.Request().ParseForm(); err != nil {
		return ctx.Redirect(http.StatusSeeOther, "/rsvp?error=1")
	}
	form := ctx.Request().PostForm

	resp, fieldErrors, err := c.service.Submit(ctx.Request().Context(), mapper.FromForm(form))
	if err != nil || len(fieldErrors) > 0 {
		q := url.Values{"error": {"1"}}
		if len(fieldErrors) > 0 {
			q.Set("message", fieldErrors[0].Message)
		} else {
			logger.Error("RSVPController:SubmitForm:Error", "error", err)
			q.Set("message", "Something went wrong, please try again")
		}
		return ctx.Redirect(http.StatusSeeOther, "/rsvp?"+q.Encode())
	}

	q := url.Values{
		"name":      {form.Get("name")},
		"attending": {form.Get("attendance")},
		"guests":    {form.Get("numberOfGuests")},
		"ref":       {resp.Reference},
	}
	return ctx.Redirect(http.StatusSeeOther, "/rsvp/thanks?"+q.Encode())
}

// FormPage renders the public RSVP form.
func (c *RSVPController) FormPage(ctx echo.Context) error {
	couple := "Our Wedding"
	date := ""
	if cfg, ok := config.GetSafe(); ok {
		couple = cfg.CoupleNames
		date = cfg.WeddingDate
	}

	errBanner := ""
	if ctx.QueryParam("error") != "" {
		msg := ctx.QueryParam("message")
		if msg == "" {
			msg = "Please check your details and try again"
		}
		errBanner = `<div class="error">` + html.EscapeString(msg) + `</div>`
	}

	page := `
<!doctype html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>RSVP — ` + html.EscapeString(couple) + `</title>
<style>
:root{--bg:#faf7f2;--fg:#2d2a26;--muted:#8a8378;--primary:#9a6b4f;--border:#ddd4c8}
body{font-family:Georgia,'Times New Roman',serif;margin:0;background:var(--bg);color:var(--fg)}
.container{max-width:560px;margin:40px auto;padding:0 20px}
.card{background:#fff;border:1px solid var(--border);border-radius:12px;padding:24px}
.title{font-size:26px;text-align:center;margin-bottom:4px}
.subtitle{color:var(--muted);text-align:center;margin-bottom:20px}
.row{margin-top:14px}
label{display:block;margin-bottom:4px;color:var(--muted);font-size:14px}
input,textarea,select{width:100%;box-sizing:border-box;padding:9px;border:1px solid var(--border);border-radius:8px;font-family:inherit}
.btn{background:var(--primary);color:#fff;border:none;border-radius:8px;padding:12px 16px;cursor:pointer;width:100%;margin-top:18px;font-size:16px}
.error{background:#fbeaea;border:1px solid #d9a0a0;border-radius:8px;padding:10px;margin-bottom:14px;color:#7a2e2e}
.guest{margin-top:8px}
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <div class="title">` + html.EscapeString(couple) + `</div>
    <div class="subtitle">` + html.EscapeString(date) + `</div>
    ` + errBanner + `
    <form method="POST" action="/rsvp">
      <div class="row"><label>Your name</label><input name="name" required></div>
      <div class="row"><label>Email</label><input name="email" type="email" required></div>
      <div class="row"><label>Will you attend?</label>
        <select name="attendance" id="attendance">
          <option value="yes">Joyfully accepts</option>
          <option value="no">Regretfully declines</option>
        </select>
      </div>
      <div class="row"><label>Additional guests (0–` + strconv.Itoa(constants.MaxGuests) + `)</label>
        <input name="numberOfGuests" id="numberOfGuests" type="number" min="0" max="` + strconv.Itoa(constants.MaxGuests) + `" value="0">
      </div>
      <div id="guestNames"></div>
      <div class="row"><label>Dietary restrictions</label><textarea name="dietaryRestrictions" rows="2"></textarea></div>
      <div class="row"><label>Song requests</label><input name="songRequests"></div>
      <div class="row"><label>Notes for the couple</label><textarea name="notes" rows="3"></textarea></div>
      <button class="btn" type="submit">Send RSVP</button>
    </form>
  </div>
</div>
<script>
const attendance = document.getElementById('attendance')
const countInput = document.getElementById('numberOfGuests')
const namesRoot = document.getElementById('guestNames')
let names = []

// Mirror of the server-side slot rules: grow with empty slots, truncate on
// shrink, clear when declining. Values survive by slot index.
function sync(){
  const attending = attendance.value === 'yes'
  let count = parseInt(countInput.value, 10) || 0
  if(!attending){ count = 0; countInput.value = '0' }
  if(count < 0) count = 0
  if(count > ` + strconv.Itoa(constants.MaxGuests) + `) count = ` + strconv.Itoa(constants.MaxGuests) + `
  if(count === names.length) return
  const next = new Array(count).fill('')
  for(let i = 0; i < Math.min(count, names.length); i++) next[i] = names[i]
  names = next
  render()
}
function render(){
  namesRoot.innerHTML = ''
  names.forEach((value, i) => {
    const div = document.createElement('div'); div.className = 'row guest'
    const label = document.createElement('label'); label.textContent = 'Guest ' + (i + 1) + ' name'
    const input = document.createElement('input')
    input.name = 'guestName' + i
    input.value = value
    input.required = true
    input.oninput = () => { names[i] = input.value }
    div.appendChild(label); div.appendChild(input)
    namesRoot.appendChild(div)
  })
}
attendance.onchange = sync
countInput.oninput = sync
</script>
</body>
</html>`
	return ctx.HTML(http.StatusOK, page)
}

// ThanksPage renders the confirmation view from the redirect's query params.
func (c *RSVPController) ThanksPage(ctx echo.Context) error {
	name := ctx.QueryParam("name")
	attending := ctx.QueryParam("attending") == "yes"
	guests := ctx.QueryParam("guests")
	ref := ctx.QueryParam("ref")

	message := "We are sorry you cannot make it. Thank you for letting us know."
	if attending {
		message = "We can't wait to celebrate with you!"
		if guests != "" && guests != "0" {
			message = fmt.Sprintf("We can't wait to celebrate with you and your %s guest(s)!", html.EscapeString(guests))
		}
	}

	refLine := ""
	if ref != "" {
		refLine = `<p class="muted">Confirmation reference: ` + html.EscapeString(ref) + `</p>`
	}

	page := `
<!doctype html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Thank you</title>
<style>
body{font-family:Georgia,'Times New Roman',serif;margin:0;background:#faf7f2;color:#2d2a26}
.container{max-width:560px;margin:80px auto;padding:0 20px;text-align:center}
.card{background:#fff;border:1px solid #ddd4c8;border-radius:12px;padding:40px}
.muted{color:#8a8378;font-size:14px}
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h1>Thank you, ` + html.EscapeString(name) + `!</h1>
    <p>` + message + `</p>
    <p>A confirmation email is on its way.</p>
    ` + refLine + `
  </div>
</div>
</body>
</html>`
	return ctx.HTML(http.StatusOK, page)
}

func toControllerErrors(fieldErrors []validator.FieldError) []controller.FieldError {
	out := make([]controller.FieldError, len(fieldErrors))
	for i, fe := range fieldErrors {
		out[i] = controller.FieldError{Field: fe.Field, Message: fe.Message}
	}
	return out
}
