package handlers

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/zerohunger/portal/internal/api/dto"
	"github.com/zerohunger/portal/internal/backend"
	"github.com/zerohunger/portal/internal/domain"
	"github.com/zerohunger/portal/internal/media"
	"github.com/zerohunger/portal/internal/service"
	"github.com/zerohunger/portal/internal/session"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

const (
	myFoodsPath = "/donor/my-foods"
	addFoodPath = "/donor/add-food"
)

// DonorHandler serves the donor pages.
type DonorHandler struct {
	donor    *service.DonorService
	maxImage int64
}

// NewDonorHandler constructs handler.
func NewDonorHandler(donorService *service.DonorService, maxImageBytes int64) *DonorHandler {
	return &DonorHandler{donor: donorService, maxImage: maxImageBytes}
}

// Dashboard renders the donor dashboard.
func (h *DonorHandler) Dashboard(c *fiber.Ctx) error {
	view, err := h.donor.Dashboard(c.UserContext(), callerOf(c), pageParam(c))
	if err != nil {
		return err
	}
	return render(c, "donor/dashboard", fiber.Map{"View": view})
}

// AddFoodPage handles GET /donor/add-food.
func (h *DonorHandler) AddFoodPage(c *fiber.Ctx) error {
	form := defaultAddFoodForm()
	if len(c.Request().URI().QueryString()) > 0 {
		if err := c.QueryParser(&form); err != nil {
			form = defaultAddFoodForm()
		}
	}
	form.FoodName, form.Quantity, form.Image = "", "", ""
	return render(c, "donor/add_food", fiber.Map{"Form": form})
}

// AddFood handles POST /donor/add-food.
func (h *DonorHandler) AddFood(c *fiber.Ctx) error {
	var form dto.AddFoodForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}
	image, err := uploadedImage(c, form.Image, h.maxImage)
	if err != nil {
		return formFailed(c, err, "donor/add_food", fiber.Map{"Form": form})
	}

	err = h.donor.AddFood(c.UserContext(), callerOf(c), service.AddFoodInput{
		FoodName:         form.FoodName,
		Quantity:         form.Quantity,
		FoodType:         domain.FoodType(form.FoodType),
		ItemCategory:     domain.FoodCategory(form.ItemCategory),
		ExpiryDateTime:   form.ExpiryDateTime,
		ExpiryDateOnly:   form.ExpiryDateOnly,
		IsSameAsLocation: form.IsSameAsLocation,
		Address:          form.Address,
		Lat:              form.Lat,
		Lng:              form.Lng,
		Image:            image,
	})
	if err != nil {
		form.Image = ""
		return formFailed(c, err, "donor/add_food", fiber.Map{"Form": form})
	}

	return redirectWithFlash(c, nextItemURL(form), service.MsgItemAdded)
}

// nextItemURL keeps type, category and location for the next item.
func nextItemURL(form dto.AddFoodForm) string {
	q := url.Values{}
	q.Set("foodType", form.FoodType)
	q.Set("itemCategory", form.ItemCategory)
	q.Set("isSameAsLocation", strconv.FormatBool(form.IsSameAsLocation))
	q.Set("address", form.Address)
	q.Set("lat", form.Lat)
	q.Set("lng", form.Lng)
	return addFoodPath + "?" + q.Encode()
}

// MyFoods handles GET /donor/my-foods.
func (h *DonorHandler) MyFoods(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	view, err := h.donor.MyFoods(c.UserContext(), callerOf(c), service.MyFoodsQuery{Search: q.Search, Status: q.Status, Page: q.Page})
	if err != nil {
		return err
	}
	return render(c, "donor/my_foods", fiber.Map{"View": view, "Statuses": domain.FoodStatuses})
}

// UpdateFood handles POST /donor/foods/:id/update.
func (h *DonorHandler) UpdateFood(c *fiber.Ctx) error {
	var form dto.UpdateFoodForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}
	err := h.donor.UpdateFood(c.UserContext(), callerOf(c), c.Params("id"), service.UpdateFoodInput{
		FoodName:   form.FoodName,
		Quantity:   form.Quantity,
		ExpiryTime: form.ExpiryTime,
		Address:    form.Address,
	})
	if err != nil {
		return actionFailed(c, err, myFoodsPath)
	}
	return redirectWithFlash(c, myFoodsPath, service.MsgUpdated)
}

// DeleteFood handles POST /donor/foods/:id/delete.
func (h *DonorHandler) DeleteFood(c *fiber.Ctx) error {
	if err := h.donor.DeleteFood(c.UserContext(), callerOf(c), c.Params("id")); err != nil {
		return actionFailed(c, err, myFoodsPath)
	}
	return redirectWithFlash(c, myFoodsPath, service.MsgDeleted)
}

func defaultAddFoodForm() dto.AddFoodForm {
	return dto.AddFoodForm{
		FoodType:         string(domain.FoodTypeVeg),
		ItemCategory:     string(domain.FoodCategoryCooked),
		IsSameAsLocation: true,
	}
}

func callerOf(c *fiber.Ctx) backend.Caller {
	return backend.CallerFor(session.FromContext(c))
}

// uploadedImage prefers the data URL converted in the browser and falls back to
// the uploaded file. No image at all yields "" for the service to reject.
func uploadedImage(c *fiber.Ctx, dataURL string, maxBytes int64) (string, error) {
	if dataURL != "" {
		return dataURL, nil
	}
	fh, err := c.FormFile("image_file")
	if err != nil || fh == nil || fh.Size == 0 {
		return "", nil
	}
	return media.DataURLFromFile(fh, maxBytes)
}
