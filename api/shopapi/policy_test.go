package shopapi

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/go-storefront/storefront/storage/model"
)

func TestDecide(t *testing.T) {
	admin := &model.User{
		ID:   "aaaaaaaaaaaaaaaaaaaaaaaa",
		Role: model.RoleAdmin,
	}
	customer := &model.User{
		ID:   "cccccccccccccccccccccccc",
		Role: model.RoleCustomer,
	}
	stranger := &model.User{
		ID:   "ssssssssssssssssssssssss",
		Role: "guest",
	}
	owned := target{
		id:      "oooooooooooooooooooooooo",
		ownerID: customer.ID,
	}
	foreign := target{
		id:      "oooooooooooooooooooooooo",
		ownerID: "dddddddddddddddddddddddd",
	}

	tests := []struct {
		kind      resourceKind
		act       action
		principal *model.User
		target    target
		expected  decision
	}{
		{kindRegister, actionCreate, nil, target{}, allow},
		{kindUsers, actionList, nil, target{}, denyAuthRequired},
		{kindUsers, actionList, customer, target{}, denyForbidden},
		{kindUsers, actionList, admin, target{}, allow},
		{kindUsers, actionRead, admin, target{id: admin.ID}, allow},
		{kindUsers, actionUpdate, admin, target{id: customer.ID}, allow},
		{kindUsers, actionUpdate, admin, target{id: admin.ID}, denySelf},
		{kindUsers, actionDelete, admin, target{id: admin.ID}, denySelf},
		{kindUsers, actionDelete, customer, target{id: customer.ID}, denyForbidden},
		{kindProducts, actionList, nil, target{}, denyAuthRequired},
		{kindProducts, actionList, customer, target{}, allow},
		{kindProducts, actionRead, customer, target{}, allow},
		{kindProducts, actionCreate, customer, target{}, denyForbidden},
		{kindProducts, actionUpdate, customer, target{}, denyForbidden},
		{kindProducts, actionDelete, admin, target{}, allow},
		{kindOrders, actionList, customer, target{}, allow},
		{kindOrders, actionList, admin, target{}, allow},
		{kindOrders, actionRead, customer, owned, allow},
		{kindOrders, actionRead, customer, foreign, denyNotFound},
		{kindOrders, actionRead, admin, foreign, allow},
		{kindOrders, actionCreate, customer, target{}, allow},
		{kindOrders, actionCreate, admin, target{}, denyForbidden},
		{kindOrders, actionDelete, customer, owned, denyForbidden},
		{kindOrders, actionDelete, admin, owned, allow},
		{kindOrders, actionRead, nil, owned, denyAuthRequired},
		{kindProducts, actionList, stranger, target{}, denyForbidden},
	}
	for i, test := range tests {
		t.Run(
			fmt.Sprintf("%d_%s", i, test.kind), func(t *testing.T) {
				assert.Equal(t, test.expected, decide(test.kind, test.act, test.principal, test.target))
			},
		)
	}
}

func TestEnforce(t *testing.T) {
	assert.NoError(t, enforce(allow, actionRead))
	assert.Equal(t, fiber.ErrUnauthorized, enforce(denyAuthRequired, actionRead))
	assert.Equal(t, fiber.ErrForbidden, enforce(denyForbidden, actionRead))
	assert.Equal(t, fiber.ErrNotFound, enforce(denyNotFound, actionRead))

	var fe *fiber.Error
	assert.ErrorAs(t, enforce(denySelf, actionUpdate), &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Equal(t, "Updating own data is not allowed", fe.Message)
	assert.ErrorAs(t, enforce(denySelf, actionDelete), &fe)
	assert.Equal(t, "Deleting own data is not allowed", fe.Message)
}
