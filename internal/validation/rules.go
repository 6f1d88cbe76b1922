package validation

// Entity names one family of rules.
type Entity string

const (
	EntityUser      Entity = "user"
	EntityLogin     Entity = "login"
	EntityVoter     Entity = "voter"
	EntityElection  Entity = "election"
	EntityCandidate Entity = "candidate"
	EntityVote      Entity = "vote"
)

// rule is a validator tag chain plus the message reported for each tag.
// Tags run left to right and the first failure wins for that field.
type rule struct {
	tags     string
	messages map[string]string
}

const (
	msgEmailRequired = "Email is required"
	msgEmailInvalid  = "Please enter a valid email address"
	msgAddrRequired  = "Address is required"
	msgAddrShort     = "Address must be at least 10 characters long"
	msgAddrLong      = "Address cannot exceed 200 characters"
	msgNameRequired  = "Full name is required"
	msgNameShort     = "Full name must be at least 2 characters long"
	msgNameLong      = "Full name cannot exceed 100 characters"
	msgNameChars     = "Full name can only contain letters and spaces"
	msgFormTitleReq  = "Form title is required"
	msgFormIDReq     = "Form ID is required"
)

var (
	emailRule = rule{
		tags:     "notblank,emailaddr",
		messages: map[string]string{"notblank": msgEmailRequired, "emailaddr": msgEmailInvalid},
	}
	fullNameRule = rule{
		tags: "notblank,tmin=2,tmax=100,fullname",
		messages: map[string]string{
			"notblank": msgNameRequired,
			"tmin":     msgNameShort,
			"tmax":     msgNameLong,
			"fullname": msgNameChars,
		},
	}
	addressRule = rule{
		tags:     "notblank,tmin=10,tmax=200",
		messages: map[string]string{"notblank": msgAddrRequired, "tmin": msgAddrShort, "tmax": msgAddrLong},
	}
)

func imageRule(label string) rule {
	return rule{
		tags:     "omitempty,imagesrc",
		messages: map[string]string{"imagesrc": label + " must be a valid image URL or base64 data"},
	}
}

func uidRule(label string, minLen string) rule {
	return rule{
		tags: "notblank,uid=" + minLen,
		messages: map[string]string{
			"notblank": label + " is required",
			"uid":      label + " must be at least " + minLen + " characters long and contain only uppercase letters and numbers",
		},
	}
}

// rules is the single rule set shared by every write path.
var rules = map[Entity]map[string]rule{
	EntityUser: {
		"username": {
			tags: "notblank,tmin=3,tmax=50,username",
			messages: map[string]string{
				"notblank": "Username is required",
				"tmin":     "Username must be at least 3 characters long",
				"tmax":     "Username cannot exceed 50 characters",
				"username": "Username can only contain letters, numbers, and underscores",
			},
		},
		"email": emailRule,
		"password": {
			tags: "required,min=6,max=100",
			messages: map[string]string{
				"required": "Password is required",
				"min":      "Password must be at least 6 characters long",
				"max":      "Password cannot exceed 100 characters",
			},
		},
		"userType": userTypeRule,
	},
	EntityLogin: {
		"email":    emailRule,
		"password": {tags: "required", messages: map[string]string{"required": "Password is required"}},
		"userType": userTypeRule,
	},
	EntityVoter: {
		"full_name": fullNameRule,
		"phone_number": {
			tags:     "notblank,phone10",
			messages: map[string]string{"notblank": "Phone number is required", "phone10": "Please enter a valid 10-digit phone number"},
		},
		"email":   emailRule,
		"address": addressRule,
		"birthdate": {
			tags: "notblank,date,agerange=18:120",
			messages: map[string]string{
				"notblank": "Birth date is required",
				"date":     "Please enter a valid birth date",
				"agerange": "Voter must be between 18 and 120 years old",
			},
		},
		"age": {
			tags: "notblank,intmin=18,intmax=120",
			messages: map[string]string{
				"notblank": "Age is required",
				"intmin":   "Age must be between 18 and 120 years",
				"intmax":   "Age must be between 18 and 120 years",
			},
		},
		"user_id": uidRule("User ID", "8"),
		"image":   imageRule("Image"),
	},
	EntityElection: {
		"title": {
			tags: "notblank,tmin=3,tmax=100,title",
			messages: map[string]string{
				"notblank": "Voting title is required",
				"tmin":     "Voting title must be at least 3 characters long",
				"tmax":     "Voting title cannot exceed 100 characters",
				"title":    "Voting title can only contain letters, numbers, spaces, hyphens, and underscores",
			},
		},
		"numCandidates": {
			tags: "notblank,intmin=2,intmax=20",
			messages: map[string]string{
				"notblank": "Number of candidates is required",
				"intmin":   "At least 2 candidates are required",
				"intmax":   "Maximum 20 candidates allowed",
			},
		},
		"expiryDate": {
			tags: "notblank,date,future",
			messages: map[string]string{
				"notblank": "Expiry date is required",
				"date":     "Please enter a valid expiry date",
				"future":   "Expiry date must be in the future",
			},
		},
		"Uid": uidRule("Form UID", "10"),
	},
	EntityCandidate: {
		"fullName": fullNameRule,
		"birthDate": {
			tags: "notblank,date,agerange=18:80",
			messages: map[string]string{
				"notblank": "Birth date is required",
				"date":     "Please enter a valid birth date",
				"agerange": "Candidate must be between 18 and 80 years old",
			},
		},
		"age": {
			tags: "notblank,intmin=18,intmax=80",
			messages: map[string]string{
				"notblank": "Age is required",
				"intmin":   "Age must be between 18 and 80 years",
				"intmax":   "Age must be between 18 and 80 years",
			},
		},
		"email": emailRule,
		"mobile": {
			tags:     "notblank,phone10",
			messages: map[string]string{"notblank": "Mobile number is required", "phone10": "Please enter a valid 10-digit mobile number"},
		},
		"address":    addressRule,
		"image":      imageRule("Image"),
		"voterIcon":  imageRule("Voter icon"),
		"Uid":        uidRule("Candidate UID", "10"),
		"Form_Title": {tags: "notblank", messages: map[string]string{"notblank": msgFormTitleReq}},
		"Form_Id":    {tags: "notblank", messages: map[string]string{"notblank": msgFormIDReq}},
	},
	EntityVote: {
		"candidateUid": uidRule("Candidate UID", "10"),
		"voterId":      uidRule("Voter ID", "8"),
		"formId":       {tags: "notblank", messages: map[string]string{"notblank": msgFormIDReq}},
		"formTitle":    {tags: "notblank", messages: map[string]string{"notblank": msgFormTitleReq}},
	},
}

var userTypeRule = rule{
	tags: "notblank,oneof=voter candidate",
	messages: map[string]string{
		"notblank": "User type is required",
		"oneof":    `User type must be either "voter" or "candidate"`,
	},
}
