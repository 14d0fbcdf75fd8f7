package services

import (
	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/model"
	"github.com/autolane-tms/autolane_api/shared"
)

// FleetService manages dealers and their vehicles.
type FleetService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	mediaSvc *MediaService
}

const FLEET_SVC = "fleet_svc"

func (svc FleetService) Id() string {
	return FLEET_SVC
}

func (svc *FleetService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	return nil
}

// ==================== DEALERS ====================

func (svc *FleetService) CreateDealer(req dto.CreateDealerRequest) (*dto.DealerResponse, error) {
	existing, err := svc.sqlSvc.GetUserByEmail(req.Email)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to create dealer")
	}
	if existing != nil {
		return nil, shared.NewBadRequestError(nil, "Email is already registered")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to create dealer")
	}

	user := &model.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: hash,
	}
	dealer := &model.Dealer{
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
		Address:     req.Address,
	}

	if err := svc.sqlSvc.CreateDealer(user, dealer); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return svc.dealerResponse(dealer, user)
}

func (svc *FleetService) GetDealer(dealerID string) (*dto.DealerResponse, error) {
	dealer, err := svc.sqlSvc.GetDealer(dealerID)
	if err != nil {
		return nil, err
	}

	user, err := svc.sqlSvc.GetUser(dealer.UserID)
	if err != nil || user == nil {
		return nil, shared.NewNotFoundError(err, "Dealer account not found")
	}

	return svc.dealerResponse(dealer, user)
}

func (svc *FleetService) GetDealerByUserID(userID string) (*dto.DealerResponse, error) {
	dealer, err := svc.sqlSvc.GetDealerByUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil || user == nil {
		return nil, shared.NewNotFoundError(err, "Dealer account not found")
	}

	return svc.dealerResponse(dealer, user)
}

func (svc *FleetService) ListDealers(page, limit int, search string) (*dto.DealerListResponse, error) {
	page, limit = normalizePage(page, limit)

	dealers, total, err := svc.sqlSvc.ListDealers(page, limit, search)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list dealers")
	}

	resp := &dto.DealerListResponse{
		Dealers: make([]dto.DealerResponse, 0, len(dealers)),
		Total:   total,
		Page:    page,
		Limit:   limit,
	}

	for i := range dealers {
		user, err := svc.sqlSvc.GetUser(dealers[i].UserID)
		if err != nil || user == nil {
			log.Errorf("Dealer %s has no user row", dealers[i].ID)
			continue
		}
		dr, err := svc.dealerResponse(&dealers[i], user)
		if err != nil {
			return nil, err
		}
		resp.Dealers = append(resp.Dealers, *dr)
	}

	return resp, nil
}

func (svc *FleetService) UpdateDealerProfile(userID string, req dto.UpdateDealerProfileRequest) (*dto.DealerResponse, error) {
	dealer, err := svc.sqlSvc.GetDealerByUserID(userID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != "" {
		dealer.CompanyName = req.CompanyName
	}
	if req.Phone != "" {
		dealer.Phone = req.Phone
	}
	if req.Address != "" {
		dealer.Address = req.Address
	}

	if err := svc.sqlSvc.UpdateDealer(dealer); err != nil {
		return nil, shared.NewInternalError(err, "Failed to update profile")
	}

	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil || user == nil {
		return nil, shared.NewNotFoundError(err, "Dealer account not found")
	}

	if req.Name != "" && req.Name != user.Name {
		user.Name = req.Name
		if err := svc.sqlSvc.Db().Model(&model.User{}).Where("id = ?", user.ID).
			Update("name", req.Name).Error; err != nil {
			return nil, shared.NewInternalError(err, "Failed to update profile")
		}
	}

	return svc.dealerResponse(dealer, user)
}

// SetDealerStatus blocks or unblocks the dealer's login. Existing tokens
// carry the old status until they expire or renew.
func (svc *FleetService) SetDealerStatus(dealerID, status string) error {
	dealer, err := svc.sqlSvc.GetDealer(dealerID)
	if err != nil {
		return err
	}

	return svc.sqlSvc.UpdateUserStatus(dealer.UserID, status)
}

func (svc *FleetService) dealerResponse(dealer *model.Dealer, user *model.User) (*dto.DealerResponse, error) {
	balance, err := svc.sqlSvc.DealerBalance(dealer.ID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load dealer balance")
	}

	return &dto.DealerResponse{
		ID:           dealer.ID,
		Email:        user.Email,
		Name:         user.Name,
		CompanyName:  dealer.CompanyName,
		Phone:        dealer.Phone,
		Address:      dealer.Address,
		Status:       user.Status,
		BalanceCents: balance,
		CreatedAt:    dealer.CreatedAt,
	}, nil
}

// ==================== VEHICLES ====================

func (svc *FleetService) CreateVehicle(req dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if _, err := svc.sqlSvc.GetDealer(req.DealerID); err != nil {
		return nil, err
	}

	vehicle := &model.Vehicle{
		DealerID: req.DealerID,
		VIN:      req.VIN,
		Make:     req.Make,
		Model:    req.Model,
		Year:     req.Year,
	}

	if err := svc.sqlSvc.CreateVehicle(vehicle); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return svc.vehicleResponse(vehicle), nil
}

func (svc *FleetService) GetVehicle(vehicleID string) (*dto.VehicleResponse, error) {
	vehicle, err := svc.sqlSvc.GetVehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	return svc.vehicleResponse(vehicle), nil
}

// GetDealerVehicle loads a vehicle only if it belongs to the dealer owning
// userID. Other dealers' vehicles read as not found, not forbidden.
func (svc *FleetService) GetDealerVehicle(userID, vehicleID string) (*dto.VehicleResponse, error) {
	dealer, err := svc.sqlSvc.GetDealerByUserID(userID)
	if err != nil {
		return nil, err
	}

	vehicle, err := svc.sqlSvc.GetVehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	if vehicle.DealerID != dealer.ID {
		return nil, shared.NewNotFoundError(nil, "Not Found")
	}

	return svc.vehicleResponse(vehicle), nil
}

func (svc *FleetService) ListVehicles(dealerID, status string, page, limit int) (*dto.VehicleListResponse, error) {
	page, limit = normalizePage(page, limit)

	vehicles, total, err := svc.sqlSvc.ListVehicles(dealerID, status, page, limit)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list vehicles")
	}

	resp := &dto.VehicleListResponse{
		Vehicles: make([]dto.VehicleResponse, 0, len(vehicles)),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}
	for i := range vehicles {
		resp.Vehicles = append(resp.Vehicles, *svc.vehicleResponse(&vehicles[i]))
	}
	return resp, nil
}

func (svc *FleetService) ListDealerVehicles(userID, status string, page, limit int) (*dto.VehicleListResponse, error) {
	dealer, err := svc.sqlSvc.GetDealerByUserID(userID)
	if err != nil {
		return nil, err
	}
	return svc.ListVehicles(dealer.ID, status, page, limit)
}

func (svc *FleetService) UpdateVehicleStatus(vehicleID, status string) (*dto.VehicleResponse, error) {
	if _, err := svc.sqlSvc.GetVehicle(vehicleID); err != nil {
		return nil, err
	}

	if err := svc.sqlSvc.UpdateVehicleStatus(vehicleID, status); err != nil {
		return nil, shared.NewInternalError(err, "Failed to update vehicle")
	}

	return svc.GetVehicle(vehicleID)
}

func (svc *FleetService) RecordLocation(vehicleID string, req dto.RecordLocationRequest) error {
	if _, err := svc.sqlSvc.GetVehicle(vehicleID); err != nil {
		return err
	}

	return svc.sqlSvc.AddVehicleLocation(&model.VehicleLocation{
		VehicleID: vehicleID,
		Lat:       req.Lat,
		Lon:       req.Lon,
	})
}

func (svc *FleetService) vehicleResponse(vehicle *model.Vehicle) *dto.VehicleResponse {
	resp := &dto.VehicleResponse{
		ID:        vehicle.ID,
		DealerID:  vehicle.DealerID,
		VIN:       vehicle.VIN,
		Make:      vehicle.Make,
		Model:     vehicle.Model,
		Year:      vehicle.Year,
		Status:    vehicle.Status,
		PhotoURL:  svc.mediaSvc.PhotoURL(vehicle.PhotoKey),
		CreatedAt: vehicle.CreatedAt,
	}

	location, err := svc.sqlSvc.LatestVehicleLocation(vehicle.ID)
	if err != nil {
		log.Errorf("Failed to load location for vehicle %s: %v", vehicle.ID, err)
	} else if location != nil {
		resp.Location = &dto.LocationResponse{
			Lat:        location.Lat,
			Lon:        location.Lon,
			RecordedAt: location.RecordedAt,
		}
	}

	return resp
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
