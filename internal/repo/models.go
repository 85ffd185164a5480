package repo

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	CollectionUsers           = "users"
	CollectionDoctors         = "doctors"
	CollectionAppointments    = "appointments"
	CollectionBookingMessages = "bookingmessages"
	CollectionTestRecords     = "testrecords"
	CollectionTreatments      = "treatmentrecords"
	CollectionPayments        = "payments"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type HealthData struct {
	Height      float64 `bson:"height,omitempty" json:"height,omitempty"`
	Weight      float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	BloodType   string  `bson:"bloodType,omitempty" json:"bloodType,omitempty"`
	Allergies   string  `bson:"allergies,omitempty" json:"allergies,omitempty"`
	Conditions  string  `bson:"conditions,omitempty" json:"conditions,omitempty"`
	Medications string  `bson:"medications,omitempty" json:"medications,omitempty"`
}

type User struct {
	ID                bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username          string        `bson:"username" json:"username"`
	Email             string        `bson:"email" json:"email"`
	Phone             string        `bson:"phone" json:"phone"`
	PasswordHash      string        `bson:"password" json:"-"`
	Role              string        `bson:"role" json:"role"`
	FirstName         string        `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName          string        `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Address           string        `bson:"address,omitempty" json:"address,omitempty"`
	InitialHealthData HealthData    `bson:"initialHealthData" json:"initialHealthData"`
	Feedback          string        `bson:"feedback,omitempty" json:"feedback,omitempty"`
	FeedbackAt        *time.Time    `bson:"feedbackAt,omitempty" json:"feedbackAt,omitempty"`
	Notifications     []string      `bson:"notifications" json:"notifications"`
	ProfileImage      string        `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	CreatedAt         time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time     `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// ---------------------------------------------------------------------------
// Doctors and appointments
// ---------------------------------------------------------------------------

type Doctor struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string        `bson:"name" json:"name"`
	Specialization string        `bson:"specialization" json:"specialization"`
	Email          string        `bson:"email,omitempty" json:"email,omitempty"`
	Phone          string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Status         string        `bson:"status" json:"status"`
	Fee            float64       `bson:"fee" json:"fee"`

	// Booking window; any empty bound makes the doctor unavailable.
	VisibilityStartDate *time.Time `bson:"visibilityStartDate,omitempty" json:"visibilityStartDate,omitempty"`
	VisibilityEndDate   *time.Time `bson:"visibilityEndDate,omitempty" json:"visibilityEndDate,omitempty"`
	VisibilityStartTime string     `bson:"visibilityStartTime,omitempty" json:"visibilityStartTime,omitempty"`
	VisibilityEndTime   string     `bson:"visibilityEndTime,omitempty" json:"visibilityEndTime,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Appointment struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	DoctorID     bson.ObjectID `bson:"doctorId" json:"doctorId"`
	DoctorName   string        `bson:"doctorName" json:"doctorName"`
	UserID       bson.ObjectID `bson:"userId" json:"userId"`
	PatientName  string        `bson:"patientName" json:"patientName"`
	PatientPhone string        `bson:"patientPhone" json:"patientPhone"`
	PatientEmail string        `bson:"patientEmail,omitempty" json:"patientEmail,omitempty"`
	Date         time.Time     `bson:"date" json:"date"`
	Time         string        `bson:"time" json:"time"`
	Status       string        `bson:"status" json:"status"`
	CancelReason string        `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}

type BookingMessage struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        bson.ObjectID `bson:"userId" json:"userId"`
	AppointmentID bson.ObjectID `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	Message       string        `bson:"message" json:"message"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
}

// ---------------------------------------------------------------------------
// Clinical records
// ---------------------------------------------------------------------------

type TestRecord struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    bson.ObjectID `bson:"userId" json:"userId"`
	TestType  string        `bson:"testType" json:"testType"`
	TestName  string        `bson:"testName" json:"testName"`
	Result    string        `bson:"result" json:"result"`
	Comments  string        `bson:"comments,omitempty" json:"comments,omitempty"`
	Date      time.Time     `bson:"date" json:"date"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

type TreatmentRecord struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        bson.ObjectID `bson:"userId" json:"userId"`
	DoctorName    string        `bson:"doctorName" json:"doctorName"`
	TreatmentType string        `bson:"treatmentType" json:"treatmentType"`
	TreatmentName string        `bson:"treatmentName" json:"treatmentName"`
	Medicine      string        `bson:"medicine,omitempty" json:"medicine,omitempty"`
	BeginDate     time.Time     `bson:"beginDate" json:"beginDate"`
	EndDate       time.Time     `bson:"endDate" json:"endDate"`
	NextSession   *time.Time    `bson:"nextSession,omitempty" json:"nextSession,omitempty"`
	Status        string        `bson:"status" json:"status"`
	Progress      int           `bson:"progress" json:"progress"`
	Frequency     string        `bson:"frequency" json:"frequency"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ---------------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------------

type Payment struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID          bson.ObjectID `bson:"userId" json:"userId"`
	Email           string        `bson:"email" json:"email"`
	DoctorName      string        `bson:"doctorName" json:"doctorName"`
	Specialization  string        `bson:"specialization" json:"specialization"`
	AppointmentDate time.Time     `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime string        `bson:"appointmentTime" json:"appointmentTime"`
	ConsultantFee   float64       `bson:"consultantFee" json:"consultantFee"`
	HospitalCharge  float64       `bson:"hospitalCharge" json:"hospitalCharge"`
	TotalFee        float64       `bson:"totalFee" json:"totalFee"`
	Method          string        `bson:"method" json:"method"`
	Status          string        `bson:"status" json:"status"`
	Slip            string        `bson:"slip,omitempty" json:"slip,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}
