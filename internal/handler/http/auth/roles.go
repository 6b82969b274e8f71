package auth

// RoleAdmin is the only role. It may mutate content, upload images and
// use the admin endpoints.
const RoleAdmin = "admin"
